// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package bulk

import (
	"bytes"
	"fmt"

	"github.com/gardener/es-paging/pkg/util"
)

// AdjustBulkSize rounds odd bulk sizes down so that every batch contains complete directive/source pairs.
// An InvalidConfiguration error is returned if less than one pair fits into a batch.
func AdjustBulkSize(bulkSize int) (int, error) {
	if bulkSize%entriesPerRecord != 0 {
		bulkSize--
	}
	if bulkSize < entriesPerRecord {
		return 0, util.NewInvalidConfigurationError("bulk size has to be at least %d but is %d", entriesPerRecord, bulkSize)
	}
	return bulkSize, nil
}

// Chunk splits the records into ordered batches with at most bulkSize wire entries.
// Every record results in two entries so a batch holds bulkSize/2 records.
// No batch is returned for an empty list of records.
func Chunk(index, typeName string, records []Record, bulkSize int) ([]Batch, error) {
	size, err := AdjustBulkSize(bulkSize)
	if err != nil {
		return nil, err
	}
	recordsPerBatch := size / entriesPerRecord

	batches := make([]Batch, 0, (len(records)+recordsPerBatch-1)/recordsPerBatch)
	for i := 0; i < len(records); i += recordsPerBatch {
		end := i + recordsPerBatch
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, Batch{
			Index:   index,
			Type:    typeName,
			Records: records[i:end],
		})
	}
	return batches, nil
}

// ValidateIDs checks that every record has an id and that no id is used twice.
func ValidateIDs(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if r.ID == "" {
			return util.NewPreconditionFailedError("record %d has no id", i)
		}
		if prev, ok := seen[r.ID]; ok {
			return util.NewPreconditionFailedError("records %d and %d have the same id %q", prev, i, r.ID)
		}
		seen[r.ID] = i
	}
	return nil
}

// Entries returns the number of bulk wire entries of the batch.
func (b Batch) Entries() int {
	return len(b.Records) * entriesPerRecord
}

// Marshal creates an elastic search bulk request body of the batch in newline delimited json.
// The mapping type is only written if withType is true as it was removed with elasticsearch 7.
func (b Batch) Marshal(withType bool) ([]byte, error) {
	buf := bytes.NewBuffer([]byte{})
	for _, r := range b.Records {
		meta := ESMetadata{
			Index: ESIndex{
				Index: b.Index,
				ID:    r.ID,
			},
		}
		if withType {
			meta.Index.Type = b.Type
		}
		metaData, err := util.MarshalNoHTMLEscape(meta)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal bulk metadata of document %s: %s", r.ID, err.Error())
		}
		source, err := util.MarshalNoHTMLEscape(r.Source)
		if err != nil {
			return nil, fmt.Errorf("cannot marshal document %s: %s", r.ID, err.Error())
		}
		buf.Write(metaData)
		buf.Write(source)
	}
	return buf.Bytes(), nil
}
