// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

//go:generate mockgen -destination=./mocks/client.go github.com/gardener/es-paging/pkg/util/elasticsearch Client

// Package elasticsearch contains a minimal http client for the index, bulk, count and search apis of elasticsearch and opensearch.
package elasticsearch
