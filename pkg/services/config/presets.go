package config

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/ini.v1"
)

var ErrPresetNotFound = errors.New("preset not found")

// PresetRegistry holds named calculator parameter presets.
type PresetRegistry interface {
	GetPresets() ([]string, error)
	GetPreset(name string) (map[string]string, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewPresetRegistry loads presets from an INI file where every section is a
// preset and every key a calculator parameter:
//
//	[barber]
//	seats = 3
//	avg_service_minutes = 40
func NewPresetRegistry(path string) (PresetRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load presets from %s: %w", path, err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

// NewPresetRegistryFromBytes is NewPresetRegistry for in-memory content.
func NewPresetRegistryFromBytes(data []byte) (PresetRegistry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetPresets() ([]string, error) {
	var presets []string
	for _, section := range r.cfg.Sections() {
		if section.Name() == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}
		presets = append(presets, section.Name())
	}
	sort.Strings(presets)
	return presets, nil
}

func (r *iniRegistry) GetPreset(name string) (map[string]string, error) {
	if name == ini.DefaultSection {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	return section.KeysHash(), nil
}
