package config

// LayoutPreset returns the layout configuration for a named preset.
// If the name is not recognized, the "default" preset is returned.
func LayoutPreset(name string) LayoutConfig {
	switch name {
	case "minimal":
		return minimalPreset()
	case "proc":
		return procPreset()
	case "battery":
		return batteryPreset()
	case "default":
		return defaultPreset()
	default:
		return defaultPreset()
	}
}

// PresetNames lists the recognized preset names.
func PresetNames() []string {
	return []string{"default", "minimal", "proc", "battery"}
}

// defaultPreset returns the standard dashboard layout.
//
//	Row 1 (ratio 3): [cpu:1]
//	Row 2 (ratio 3): [memory:1] [network:1]
//	Row 3 (ratio 4): [temperature:1] [disk:1] [process:2]
func defaultPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "default",
		Rows: []RowConfig{
			{
				Ratio: 3,
				Children: []ChildConfig{
					{Type: "cpu", Ratio: 1},
				},
			},
			{
				Ratio: 3,
				Children: []ChildConfig{
					{Type: "memory", Ratio: 1},
					{Type: "network", Ratio: 1},
				},
			},
			{
				Ratio: 4,
				Children: []ChildConfig{
					{Type: "temperature", Ratio: 1},
					{Type: "disk", Ratio: 1},
					{Type: "process", Ratio: 2},
				},
			},
		},
	}
}

// minimalPreset returns a compact CPU + memory + process layout.
//
//	Row 1 (ratio 1): [cpu:1]
//	Row 2 (ratio 1): [memory:1]
//	Row 3 (ratio 2): [process:1]
func minimalPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "minimal",
		Rows: []RowConfig{
			{
				Ratio: 1,
				Children: []ChildConfig{
					{Type: "cpu", Ratio: 1},
				},
			},
			{
				Ratio: 1,
				Children: []ChildConfig{
					{Type: "memory", Ratio: 1},
				},
			},
			{
				Ratio: 2,
				Children: []ChildConfig{
					{Type: "process", Ratio: 1},
				},
			},
		},
	}
}

// procPreset returns a process-table-only layout.
//
//	Row 1 (ratio 1): [process:1]
func procPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "proc",
		Rows: []RowConfig{
			{
				Ratio: 1,
				Children: []ChildConfig{
					{Type: "process", Ratio: 1},
				},
			},
		},
	}
}

// batteryPreset returns the default layout with a battery panel beside CPU.
//
//	Row 1 (ratio 3): [cpu:3] [battery:1]
//	Row 2 (ratio 3): [memory:1] [network:1]
//	Row 3 (ratio 4): [temperature:1] [disk:1] [process:2]
func batteryPreset() LayoutConfig {
	return LayoutConfig{
		Preset: "battery",
		Rows: []RowConfig{
			{
				Ratio: 3,
				Children: []ChildConfig{
					{Type: "cpu", Ratio: 3},
					{Type: "battery", Ratio: 1},
				},
			},
			{
				Ratio: 3,
				Children: []ChildConfig{
					{Type: "memory", Ratio: 1},
					{Type: "network", Ratio: 1},
				},
			},
			{
				Ratio: 4,
				Children: []ChildConfig{
					{Type: "temperature", Ratio: 1},
					{Type: "disk", Ratio: 1},
					{Type: "process", Ratio: 2},
				},
			},
		},
	}
}
