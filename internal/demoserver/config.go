package demoserver

// Config holds configuration for the demo server.
type Config struct {
	// Port is the port on which the demo server listens.
	Port int

	// Spaces is the list served at /spaces.
	Spaces []Space
}

// Space is one entry of the /spaces listing.
type Space struct {
	Name  string         `json:"name"`
	Image string         `json:"image"`
	JSON  map[string]any `json:"json,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port: 9999,
		Spaces: []Space{
			{
				Name:  "living-room",
				Image: "preview.jpg",
				JSON: map[string]any{
					"objects": []any{
						map[string]any{"label": "sofa", "bbox": []any{0.1, 0.2, 0.6, 0.7}},
						map[string]any{"label": "lamp", "bbox": []any{0.7, 0.1, 0.8, 0.5}},
					},
				},
			},
			{
				Name:  "kitchen",
				Image: "preview.jpg",
				JSON: map[string]any{
					"objects": []any{
						map[string]any{"label": "table", "bbox": []any{0.3, 0.4, 0.7, 0.9}},
					},
				},
			},
		},
	}
}
