// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package mapping

import (
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/gardener/es-paging/pkg/util"
)

// Default returns the mapping of the generated documents.
func Default() map[string]interface{} {
	return map[string]interface{}{
		"properties": map[string]interface{}{
			"author":     map[string]interface{}{"type": "text"},
			"text":       map[string]interface{}{"type": "text"},
			"count":      map[string]interface{}{"type": "long"},
			"@timestamp": map[string]interface{}{"type": "date"},
		},
	}
}

// Load reads a json or yaml mapping file.
// The default mapping is returned if no file is given.
func Load(file string) (map[string]interface{}, error) {
	if file == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read mapping file %s", file)
	}
	mapping := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return nil, util.NewInvalidConfigurationError("unable to parse mapping file %s: %s", file, err.Error())
	}
	if len(mapping) == 0 {
		return nil, util.NewInvalidConfigurationError("mapping file %s is empty", file)
	}
	return mapping, nil
}
