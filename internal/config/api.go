package config

import "errors"

// APIOptions configures the control API surface. Only option merging lives
// in this core; the server itself is a downstream concern.
type APIOptions struct {
	Enabled bool   `json:"enabled"`
	Address string `json:"address,omitempty"`
}

// Merge folds other into a. Two fragments binding the API to different
// addresses is a single collected error; the enabled flag still folds so the
// caller reports the conflict without losing the rest of the section.
func (a *APIOptions) Merge(other APIOptions) error {
	var err error
	if a.Address != "" && other.Address != "" && a.Address != other.Address {
		err = errors.New("conflicting values for 'api.address' found")
	} else if other.Address != "" {
		a.Address = other.Address
	}
	a.Enabled = a.Enabled || other.Enabled
	return err
}
