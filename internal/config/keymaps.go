package config

// KeyMappings defines the key bindings of the labels settings screen
type KeyMappings struct {
	// Labels
	NewLabel    string `yaml:"new_label"`
	EditLabel   string `yaml:"edit_label"`
	AddToGroup  string `yaml:"add_to_group"`
	DeleteLabel string `yaml:"delete_label"`
	Refresh     string `yaml:"refresh"`

	// Forms and the group modal
	SaveForm    string `yaml:"save_form"`
	ToggleChild string `yaml:"toggle_child"`

	// Navigation
	PrevLabel string `yaml:"prev_label"`
	NextLabel string `yaml:"next_label"`

	// Other
	Quit string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		NewLabel:    "n",
		EditLabel:   "e",
		AddToGroup:  "g",
		DeleteLabel: "d",
		Refresh:     "r",

		SaveForm:    "enter",
		ToggleChild: " ",

		PrevLabel: "k",
		NextLabel: "j",

		Quit: "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.NewLabel == "" {
		k.NewLabel = defaults.NewLabel
	}
	if k.EditLabel == "" {
		k.EditLabel = defaults.EditLabel
	}
	if k.AddToGroup == "" {
		k.AddToGroup = defaults.AddToGroup
	}
	if k.DeleteLabel == "" {
		k.DeleteLabel = defaults.DeleteLabel
	}
	if k.Refresh == "" {
		k.Refresh = defaults.Refresh
	}
	if k.SaveForm == "" {
		k.SaveForm = defaults.SaveForm
	}
	if k.ToggleChild == "" {
		k.ToggleChild = defaults.ToggleChild
	}
	if k.PrevLabel == "" {
		k.PrevLabel = defaults.PrevLabel
	}
	if k.NextLabel == "" {
		k.NextLabel = defaults.NextLabel
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
