package config

import (
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/internal"
	"github.com/BrandonKowalski/carbonara/pkg/carbonara/observer"
)

// Writer applies published setting changes to a Config and saves it on
// Flush. Changes to keys the file does not define are ignored.
type Writer struct {
	cfg     *Config
	changes *observer.Registry[observer.SettingChange]
	handle  observer.Handle
	dirty   bool
}

func NewWriter(cfg *Config, changes *observer.Registry[observer.SettingChange]) *Writer {
	w := &Writer{cfg: cfg, changes: changes}
	w.handle = changes.Attach(w.apply)
	return w
}

func (w *Writer) apply(ev observer.SettingChange) {
	if !w.cfg.Has(ev.Key) {
		internal.GetInternalLogger().Debug("Ignoring change to unknown config key", "key", ev.Key)
		return
	}
	w.cfg.Set(ev.Key, ev.Value)
	w.dirty = true
}

func (w *Writer) Dirty() bool {
	return w.dirty
}

// Flush saves the configuration if any change was applied since the last
// successful flush.
func (w *Writer) Flush() error {
	if !w.dirty {
		return nil
	}
	if err := w.cfg.Save(); err != nil {
		return err
	}
	w.dirty = false
	return nil
}

// Close stops listening for changes.
func (w *Writer) Close() {
	w.changes.Detach(w.handle)
}
