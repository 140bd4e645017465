// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alexandremahdhaoui/tooling/pkg/flaterrors"
	"sigs.k8s.io/yaml"

	"github.com/zr6b/voteapp/models"
)

// Tunables are the limits and enumerations that are not secrets and rarely
// change. They are read from an optional YAML file.
type Tunables struct {
	Regions []string `json:"regions"`
	Genders []string `json:"genders"`

	SurnameMaxLen int `json:"surnameMaxLen"`
	MessageMaxLen int `json:"messageMaxLen"`

	MessageCooldown    Duration `json:"messageCooldown"`
	MessageSweepAge    Duration `json:"messageSweepAge"`
	BroadcastRetention Duration `json:"broadcastRetention"`
	SweepInterval      Duration `json:"sweepInterval"`

	FeedLimit      int `json:"feedLimit"`
	BroadcastLimit int `json:"broadcastLimit"`
}

func DefaultTunables() Tunables {
	return Tunables{
		Regions:            append([]string(nil), models.DefaultRegions...),
		Genders:            append([]string(nil), models.DefaultGenders...),
		SurnameMaxLen:      4,
		MessageMaxLen:      30,
		MessageCooldown:    Duration{5 * time.Second},
		MessageSweepAge:    Duration{time.Minute},
		BroadcastRetention: Duration{720 * time.Hour},
		SweepInterval:      Duration{time.Minute},
		FeedLimit:          20,
		BroadcastLimit:     50,
	}
}

// LoadTunables reads path over the defaults. An empty path returns the
// defaults unchanged.
func LoadTunables(path string) (Tunables, error) {
	t := DefaultTunables()
	if path == "" {
		return t, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Tunables{}, fmt.Errorf("read tunables: %w", err)
	}
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Tunables{}, fmt.Errorf("parse tunables %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tunables{}, fmt.Errorf("invalid tunables %s: %w", path, err)
	}
	return t, nil
}

// Validate reports every invalid field at once.
func (t Tunables) Validate() error {
	var errs error
	if len(t.Regions) == 0 {
		errs = flaterrors.Join(errs, errors.New("regions must not be empty"))
	}
	if len(t.Genders) == 0 {
		errs = flaterrors.Join(errs, errors.New("genders must not be empty"))
	}
	if t.SurnameMaxLen < 1 {
		errs = flaterrors.Join(errs, errors.New("surnameMaxLen must be positive"))
	}
	if t.MessageMaxLen < 1 {
		errs = flaterrors.Join(errs, errors.New("messageMaxLen must be positive"))
	}
	if t.MessageCooldown.Duration <= 0 {
		errs = flaterrors.Join(errs, errors.New("messageCooldown must be positive"))
	}
	if t.MessageSweepAge.Duration < t.MessageCooldown.Duration {
		errs = flaterrors.Join(errs, errors.New("messageSweepAge must not be shorter than messageCooldown"))
	}
	if t.BroadcastRetention.Duration <= 0 {
		errs = flaterrors.Join(errs, errors.New("broadcastRetention must be positive"))
	}
	if t.SweepInterval.Duration <= 0 {
		errs = flaterrors.Join(errs, errors.New("sweepInterval must be positive"))
	}
	if t.FeedLimit < 1 || t.BroadcastLimit < 1 {
		errs = flaterrors.Join(errs, errors.New("feedLimit and broadcastLimit must be positive"))
	}
	return errs
}

// Duration reads "5s"-style strings as well as integer nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case float64:
		d.Duration = time.Duration(x)
	case string:
		parsed, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		d.Duration = parsed
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}
