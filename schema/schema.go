package schema

import (
	"os"
	"time"

	"recordbase/models"
	"recordbase/storage"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File declares collections and their field constraints. It is applied
// once at boot so a fresh deployment starts with a known shape.
//
//	collections:
//	  - name: users
//	    fields:
//	      - name: name
//	        type: string
//	        required: true
//	      - name: role
//	        type: string
//	        default: Guest
type File struct {
	Collections []Declaration `yaml:"collections"`
}

type Declaration struct {
	Name   string            `yaml:"name"`
	Fields []models.FieldDef `yaml:"fields"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read schema file %s", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, "could not parse schema file %s", path)
	}

	for _, decl := range f.Collections {
		if decl.Name == "" {
			return nil, errors.Errorf("schema file %s declares a collection without a name", path)
		}
		for _, def := range decl.Fields {
			if err := checkDef(def); err != nil {
				return nil, errors.Wrapf(err, "collection %q", decl.Name)
			}
		}
	}

	return &f, nil
}

func checkDef(def models.FieldDef) error {
	if def.Name == "" {
		return errors.New("field definition without a name")
	}
	switch def.Type {
	case models.FieldString, models.FieldNumber, models.FieldBool:
	default:
		return errors.Errorf("field %q has unknown type %q", def.Name, def.Type)
	}
	if (def.Min != nil || def.Max != nil) && def.Type != models.FieldNumber {
		return errors.Errorf("field %q: min/max only apply to number fields", def.Name)
	}
	if def.Default != nil {
		if err := checkType(def.Default, def.Type); err != nil {
			return errors.Wrapf(err, "field %q default", def.Name)
		}
	}
	return nil
}

// Apply creates every declared collection that does not exist yet.
// Existing collections are left untouched; the file is not a migration
// tool.
func Apply(store storage.Store, f *File) error {
	for _, decl := range f.Collections {
		existing, err := store.GetCollection(decl.Name)
		if err != nil {
			return errors.Wrapf(err, "could not look up collection %q", decl.Name)
		}
		if existing != nil {
			continue
		}

		col := &models.Collection{
			Name:      decl.Name,
			Fields:    decl.Fields,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := store.CreateCollection(col); err != nil {
			return errors.Wrapf(err, "could not create collection %q", decl.Name)
		}
	}
	return nil
}
