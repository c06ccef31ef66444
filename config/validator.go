// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrZeroLengthPhase is returned in Strict mode when SignedPhase or
// UnsignedPhase is zero: a zero-length phase can never open, which Strict
// mode treats as a misconfiguration rather than an intentionally
// disabled phase. Soft mode permits it and the phase controller treats
// the phase as skipped.
var ErrZeroLengthPhase = errors.New("signed or unsigned phase has zero length")

// ValidationMode determines how strict validation should be.
type ValidationMode int

const (
	// StrictMode rejects zero-length phases and other misconfigurations
	// that would silently disable part of the election cycle.
	StrictMode ValidationMode = iota
	// SoftMode tolerates zero-length phases, treating them as
	// intentionally skipped.
	SoftMode
)

// ValidationError contains detailed validation error information.
type ValidationError struct {
	Field      string
	Value      interface{}
	Constraint string
	Severity   string // "error" or "warning"
	Suggestion string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s=%v violates constraint: %s", ve.Severity, ve.Field, ve.Value, ve.Constraint)
}

// ValidationResult contains all validation errors and warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
	Valid    bool
}

// Validator validates election provider configurations.
type Validator struct {
	mode ValidationMode
}

// NewValidator creates a validator with strict mode by default.
func NewValidator() *Validator {
	return &Validator{mode: StrictMode}
}

// WithMode sets the validation mode.
func (v *Validator) WithMode(mode ValidationMode) *Validator {
	v.mode = mode
	return v
}

// Validate performs comprehensive validation of a configuration.
func (v *Validator) Validate(cfg *Config) error {
	result := v.ValidateDetailed(cfg)
	if !result.Valid {
		var errStrs []string
		for _, err := range result.Errors {
			errStrs = append(errStrs, err.Error())
		}
		return fmt.Errorf("validation failed:\n%s", strings.Join(errStrs, "\n"))
	}
	return nil
}

// ValidateDetailed returns detailed validation results.
func (v *Validator) ValidateDetailed(cfg *Config) *ValidationResult {
	result := &ValidationResult{Valid: true}

	v.validatePhases(cfg, result)
	v.validateSignedQueue(cfg, result)
	v.validateMiner(cfg, result)

	return result
}

func (v *Validator) validatePhases(cfg *Config, result *ValidationResult) {
	if cfg.SignedPhase == 0 {
		if v.mode == StrictMode {
			v.addError(result, "SignedPhase", cfg.SignedPhase, ErrZeroLengthPhase.Error(), "Set SignedPhase >= 1")
		} else {
			v.addWarning(result, "SignedPhase", cfg.SignedPhase, "zero length, phase will never open", "")
		}
	}
	if cfg.UnsignedPhase == 0 {
		if v.mode == StrictMode {
			v.addError(result, "UnsignedPhase", cfg.UnsignedPhase, ErrZeroLengthPhase.Error(), "Set UnsignedPhase >= 1")
		} else {
			v.addWarning(result, "UnsignedPhase", cfg.UnsignedPhase, "zero length, phase will never open", "")
		}
	}
}

func (v *Validator) validateSignedQueue(cfg *Config, result *ValidationResult) {
	if cfg.MaxSignedSubmissions < 1 {
		v.addError(result, "MaxSignedSubmissions", cfg.MaxSignedSubmissions,
			"must be at least 1", "Set MaxSignedSubmissions >= 1")
	}
	if cfg.SignedRewardMax < cfg.SignedRewardBase {
		v.addError(result, "SignedRewardMax", cfg.SignedRewardMax,
			fmt.Sprintf("must be >= SignedRewardBase (%d)", cfg.SignedRewardBase),
			fmt.Sprintf("Set SignedRewardMax >= %d", cfg.SignedRewardBase))
	}
	if uint32(cfg.SolutionImprovementThreshold) > 1_000_000_000 {
		v.addError(result, "SolutionImprovementThreshold", cfg.SolutionImprovementThreshold,
			"must not exceed 100%", "Set SolutionImprovementThreshold <= FromPercent(100)")
	}
}

func (v *Validator) validateMiner(cfg *Config, result *ValidationResult) {
	if cfg.MinerMaxIterations == 0 && v.mode == StrictMode {
		v.addWarning(result, "MinerMaxIterations", cfg.MinerMaxIterations,
			"zero iterations disables reduce-balancing", "Consider MinerMaxIterations >= 1")
	}
	if cfg.MinerMaxWeight == 0 {
		v.addError(result, "MinerMaxWeight", cfg.MinerMaxWeight,
			"must be nonzero, a zero weight budget accepts no solution", "Set MinerMaxWeight > 0")
	}
}

func (v *Validator) addError(result *ValidationResult, field string, value interface{}, constraint, suggestion string) {
	result.Errors = append(result.Errors, ValidationError{
		Field:      field,
		Value:      value,
		Constraint: constraint,
		Severity:   "error",
		Suggestion: suggestion,
	})
	result.Valid = false
}

func (v *Validator) addWarning(result *ValidationResult, field string, value interface{}, constraint, suggestion string) {
	result.Warnings = append(result.Warnings, ValidationError{
		Field:      field,
		Value:      value,
		Constraint: constraint,
		Severity:   "warning",
		Suggestion: suggestion,
	})
}
