package observer

// SettingChange is published whenever a menu item or setting changes value.
type SettingChange struct {
	Key   string
	Value string
}

// LanguageChange is published after the active language switched.
type LanguageChange struct {
	Language string
}

// Bus groups the registries shared by the launcher.
type Bus struct {
	Settings  *Registry[SettingChange]
	Languages *Registry[LanguageChange]
}

func NewBus() *Bus {
	return &Bus{
		Settings:  NewRegistry[SettingChange](),
		Languages: NewRegistry[LanguageChange](),
	}
}
