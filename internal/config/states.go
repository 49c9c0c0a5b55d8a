package config

import (
	"fmt"

	"github.com/sapops/hostctl/internal/state"
)

// Per-type wire shapes of state document entries.

type systemInstalledSpec struct {
	Name string `mapstructure:"name"`
}

type outsideDiscoverySpec struct {
	Name            string `mapstructure:"name"`
	SLDPort         int    `mapstructure:"sld_port"`
	SLDUsername     string `mapstructure:"sld_username"`
	SLDPassword     string `mapstructure:"sld_password"`
	Overwrite       bool   `mapstructure:"overwrite"`
	KeepOtherConfig bool   `mapstructure:"keep_other_config"`
}

type sdaInstalledSpec struct {
	Archive    string `mapstructure:"archive"`
	JVMArchive string `mapstructure:"jvm_archive"`
	// Verify defaults to true; nil means unset.
	Verify    *bool `mapstructure:"verify"`
	Overwrite bool  `mapstructure:"overwrite"`
}

// BuildStates turns the raw state entries into executable states, in
// document order.
func (d *Document) BuildStates() ([]state.State, error) {
	states := make([]state.State, 0, len(d.States))
	for i, raw := range d.States {
		kind, _ := raw["type"].(string)
		if kind == "" {
			return nil, fmt.Errorf("state %d has no type", i)
		}

		built, err := buildState(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("state %d (%s): %w", i, kind, err)
		}
		states = append(states, built)
	}
	return states, nil
}

func buildState(kind string, raw map[string]interface{}) (state.State, error) {
	switch kind {
	case state.KindSystemInstalled:
		var spec systemInstalledSpec
		if err := decode(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("name (the SID) is required")
		}
		return state.SystemInstalled{SID: spec.Name}, nil

	case state.KindOutsideDiscoveryExecuted:
		var spec outsideDiscoverySpec
		if err := decode(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Name == "" {
			return nil, fmt.Errorf("name (the SLD host) is required")
		}
		if spec.SLDPort < 1 || spec.SLDPort > 65535 {
			return nil, fmt.Errorf("sld_port %d is out of range", spec.SLDPort)
		}
		if spec.SLDUsername == "" || spec.SLDPassword == "" {
			return nil, fmt.Errorf("sld_username and sld_password are required")
		}
		return state.OutsideDiscoveryExecuted{
			SLDHost:         spec.Name,
			SLDPort:         spec.SLDPort,
			SLDUsername:     spec.SLDUsername,
			SLDPassword:     spec.SLDPassword,
			Overwrite:       spec.Overwrite,
			KeepOtherConfig: spec.KeepOtherConfig,
		}, nil

	case state.KindSDAInstalled:
		var spec sdaInstalledSpec
		if err := decode(raw, &spec); err != nil {
			return nil, err
		}
		if spec.Archive == "" || spec.JVMArchive == "" {
			return nil, fmt.Errorf("archive and jvm_archive are required")
		}
		return state.SDAInstalled{
			ArchivePath:    spec.Archive,
			JVMArchivePath: spec.JVMArchive,
			Verify:         spec.Verify == nil || *spec.Verify,
			Overwrite:      spec.Overwrite,
		}, nil

	default:
		return nil, fmt.Errorf("unknown state type %q", kind)
	}
}
