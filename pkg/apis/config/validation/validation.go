// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package validation

import (
	"net/url"

	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/gardener/es-paging/pkg/apis/config"
)

// ValidateConfiguration validates the passed configuration instance
func ValidateConfiguration(cfg *config.Configuration) field.ErrorList {
	allErrs := field.ErrorList{}

	allErrs = append(allErrs, validateElasticSearch(cfg.ElasticSearch, field.NewPath("elasticsearch"))...)
	allErrs = append(allErrs, validateIndex(cfg.Index, field.NewPath("index"))...)
	allErrs = append(allErrs, validateIngestion(cfg.Ingestion, field.NewPath("ingestion"))...)

	return allErrs
}

func validateElasticSearch(es config.ElasticSearch, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	if len(es.Endpoint) == 0 {
		allErrs = append(allErrs, field.Required(fldPath.Child("endpoint"), "an elasticsearch endpoint has to be defined"))
		return allErrs
	}
	u, err := url.Parse(es.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("endpoint"), es.Endpoint, "endpoint has to be an absolute url like http://localhost:9200"))
	}
	if len(es.Username) == 0 && len(es.Password) != 0 {
		allErrs = append(allErrs, field.Required(fldPath.Child("username"), "a username is required if a password is defined"))
	}

	return allErrs
}

func validateIndex(index config.Index, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	if len(index.Name) == 0 {
		allErrs = append(allErrs, field.Required(fldPath.Child("name"), "no index name is specified"))
	}
	if index.MaxResultWindow <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("maxResultWindow"), index.MaxResultWindow, "max result window has to be positive"))
	}

	return allErrs
}

func validateIngestion(ingestion config.Ingestion, fldPath *field.Path) field.ErrorList {
	allErrs := field.ErrorList{}

	if ingestion.Documents < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("documents"), ingestion.Documents, "number of documents must not be negative"))
	}
	if ingestion.BulkSize < 2 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("bulkSize"), ingestion.BulkSize, "bulk size has to be at least 2"))
	}

	settlePath := fldPath.Child("settle")
	switch ingestion.Settle.Strategy {
	case config.SettleStrategySleep:
	case config.SettleStrategyPoll:
		if ingestion.Settle.PollInterval <= 0 {
			allErrs = append(allErrs, field.Invalid(settlePath.Child("pollInterval"), ingestion.Settle.PollInterval.String(), "poll interval has to be positive"))
		}
		if ingestion.Settle.PollTimeout < ingestion.Settle.PollInterval {
			allErrs = append(allErrs, field.Invalid(settlePath.Child("pollTimeout"), ingestion.Settle.PollTimeout.String(), "poll timeout has to be greater than the poll interval"))
		}
	default:
		allErrs = append(allErrs, field.NotSupported(settlePath.Child("strategy"), ingestion.Settle.Strategy,
			[]string{string(config.SettleStrategySleep), string(config.SettleStrategyPoll)}))
	}

	return allErrs
}
