package config

import (
	"fmt"
	"strings"
)

// Source names accepted by NewSource.
const (
	SourceFile  = "file"
	SourceRigel = "rigel"
)

// SourceOptions selects and locates a configuration source. FilePath is used
// by the file source; the remaining fields name the rigel config.
type SourceOptions struct {
	System        string
	FilePath      string
	EtcdEndpoints string // comma-separated
	App           string
	Module        string
	Version       int
	ConfigName    string
}

// NewSource returns the configuration source described by o.
func NewSource(o SourceOptions) (Config, error) {
	switch o.System {
	case SourceFile:
		return &File{ConfigFilePath: o.FilePath}, nil
	case SourceRigel:
		rigelClient, err := NewRigelClient(strings.Split(o.EtcdEndpoints, ","), o.App, o.Module, o.Version, o.ConfigName)
		if err != nil {
			return nil, err
		}
		return &Rigel{Client: rigelClient}, nil
	}
	return nil, fmt.Errorf("unknown configuration system: %s", o.System)
}
