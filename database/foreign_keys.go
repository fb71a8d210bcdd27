/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/bun"
	"gopkg.in/yaml.v3"
)

var validReferentialActions = []string{"CASCADE", "RESTRICT", "SET NULL", "NO ACTION"}

// ForeignKeyConstraint describes a foreign key relationship between tables.
type ForeignKeyConstraint struct {
	Table           string `yaml:"table"`
	Column          string `yaml:"column"`
	ReferenceTable  string `yaml:"reference_table"`
	ReferenceColumn string `yaml:"reference_column"`
	OnDelete        string `yaml:"on_delete"` // CASCADE, RESTRICT, SET NULL, NO ACTION
	OnUpdate        string `yaml:"on_update"`
	ConstraintName  string `yaml:"constraint_name"`
}

// ForeignKeyConfig is the YAML document listing foreign key constraints.
type ForeignKeyConfig struct {
	ForeignKeys []ForeignKeyConstraint `yaml:"foreign_keys"`
}

// GenerateConstraintName returns the explicit name or a derived name.
func (fk *ForeignKeyConstraint) GenerateConstraintName() string {
	if fk.ConstraintName != "" {
		return fk.ConstraintName
	}
	return fmt.Sprintf("fk_%s_%s", fk.Table, fk.Column)
}

// GenerateSQL returns the unquoted ALTER TABLE statement, for logs.
func (fk *ForeignKeyConstraint) GenerateSQL() string {
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)%s",
		fk.Table, fk.GenerateConstraintName(), fk.Column, fk.ReferenceTable, fk.ReferenceColumn, fk.actions())
}

func (fk *ForeignKeyConstraint) actions() string {
	var s string
	if fk.OnDelete != "" {
		s += " ON DELETE " + strings.ToUpper(fk.OnDelete)
	}
	if fk.OnUpdate != "" {
		s += " ON UPDATE " + strings.ToUpper(fk.OnUpdate)
	}
	return s
}

// Validate checks the constraint for missing names and unknown actions.
func (fk *ForeignKeyConstraint) Validate() error {
	switch {
	case fk.Table == "":
		return fmt.Errorf("table name cannot be empty")
	case fk.Column == "":
		return fmt.Errorf("column name cannot be empty: %s", fk.Table)
	case fk.ReferenceTable == "":
		return fmt.Errorf("reference table name cannot be empty: %s.%s", fk.Table, fk.Column)
	case fk.ReferenceColumn == "":
		return fmt.Errorf("reference column name cannot be empty: %s.%s -> %s", fk.Table, fk.Column, fk.ReferenceTable)
	}
	for _, action := range []string{fk.OnDelete, fk.OnUpdate} {
		if action != "" && !isReferentialAction(action) {
			return fmt.Errorf("invalid referential action: %s, constraint: %s", action, fk.GenerateConstraintName())
		}
	}
	return nil
}

func isReferentialAction(action string) bool {
	for _, valid := range validReferentialActions {
		if strings.EqualFold(action, valid) {
			return true
		}
	}
	return false
}

// ForeignKeyManager adds foreign key constraints with ALTER TABLE.
type ForeignKeyManager struct {
	constraints []ForeignKeyConstraint
	logger      Logger
}

// NewForeignKeyManager creates a manager for the given constraints.
func NewForeignKeyManager(logger Logger, constraints []ForeignKeyConstraint) *ForeignKeyManager {
	return &ForeignKeyManager{constraints: constraints, logger: logger}
}

// LoadForeignKeyManager reads constraints from a YAML file, falling back to
// defaults when path is empty or missing.
func LoadForeignKeyManager(logger Logger, path string, defaults []ForeignKeyConstraint) (*ForeignKeyManager, error) {
	if path == "" {
		return NewForeignKeyManager(logger, defaults), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if logger != nil {
			logger.Debug("Foreign key file not found, using model defaults", "config_path", path)
		}
		return NewForeignKeyManager(logger, defaults), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read foreign key file: %w", err)
	}

	var cfg ForeignKeyConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse foreign key file: %w", err)
	}
	return NewForeignKeyManager(logger, cfg.ForeignKeys), nil
}

// Constraints returns the managed constraints.
func (fkm *ForeignKeyManager) Constraints() []ForeignKeyConstraint {
	return fkm.constraints
}

// ValidateConstraints checks every constraint and returns all problems.
func (fkm *ForeignKeyManager) ValidateConstraints() []error {
	var errs []error
	for i := range fkm.constraints {
		if err := fkm.constraints[i].Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// AddAllForeignKeys adds every constraint, stopping at the first failure.
func (fkm *ForeignKeyManager) AddAllForeignKeys(ctx context.Context, db bun.IDB) error {
	for _, fk := range fkm.constraints {
		_, err := db.ExecContext(ctx, "ALTER TABLE ? ADD CONSTRAINT ? FOREIGN KEY (?) REFERENCES ? (?)"+fk.actions(),
			bun.Ident(fk.Table),
			bun.Ident(fk.GenerateConstraintName()),
			bun.Ident(fk.Column),
			bun.Ident(fk.ReferenceTable),
			bun.Ident(fk.ReferenceColumn),
		)
		if err != nil {
			return fmt.Errorf("failed to add foreign key %s: %w", fk.GenerateConstraintName(), err)
		}
		if fkm.logger != nil {
			fkm.logger.Debug("Added foreign key constraint", "constraint", fk.GenerateConstraintName())
		}
	}
	return nil
}
