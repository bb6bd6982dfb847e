package data

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/willfong/employeedb/internal/models"
)

//go:embed vocabulary.yaml
var vocabularyFile []byte

// Vocabulary holds the name lists the generators draw from
type Vocabulary struct {
	General GeneralNames `yaml:"general"`
	Special SpecialNames `yaml:"special"`
}

// GeneralNames is the vocabulary for the mixed bulk population
type GeneralNames struct {
	LastNames  []string        `yaml:"last_names"`
	FirstNames []string        `yaml:"first_names"`
	Genders    []models.Gender `yaml:"genders"`
}

// SpecialNames is the restricted surname vocabulary for the filter test population
type SpecialNames struct {
	LastNames  []string `yaml:"last_names"`
	FirstNames []string `yaml:"first_names"`
}

var (
	instance *Vocabulary
	once     sync.Once
	loadErr  error
)

// Load parses the embedded vocabulary.
// This is thread-safe and will only parse the data once.
func Load() (*Vocabulary, error) {
	once.Do(func() {
		instance, loadErr = Parse(vocabularyFile)
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return instance, nil
}

// Parse decodes a vocabulary document and checks that every list is usable
func Parse(doc []byte) (*Vocabulary, error) {
	var v Vocabulary

	dec := yaml.NewDecoder(bytes.NewReader(doc))
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}

	if err := v.validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

func (v *Vocabulary) validate() error {
	var errs []error

	if len(v.General.LastNames) == 0 {
		errs = append(errs, errors.New("general.last_names is empty"))
	}
	if len(v.General.FirstNames) == 0 {
		errs = append(errs, errors.New("general.first_names is empty"))
	}
	if len(v.General.Genders) == 0 {
		errs = append(errs, errors.New("general.genders is empty"))
	}
	for _, g := range v.General.Genders {
		if _, err := models.ParseGender(string(g)); err != nil {
			errs = append(errs, fmt.Errorf("general.genders: %w", err))
		}
	}
	if len(v.Special.LastNames) == 0 {
		errs = append(errs, errors.New("special.last_names is empty"))
	}
	if len(v.Special.FirstNames) == 0 {
		errs = append(errs, errors.New("special.first_names is empty"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid vocabulary: %w", errors.Join(errs...))
	}
	return nil
}
