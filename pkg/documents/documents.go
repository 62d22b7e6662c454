// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package documents generates synthetic documents with a unique ascending count.
package documents

import (
	"strconv"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/gardener/es-paging/pkg/util/elasticsearch/bulk"
)

// Document is a generated document.
// The count is the position of the document and is used as its id.
type Document struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"@timestamp"`
}

// Generator creates documents from a seeded faker.
type Generator struct {
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator creates a new generator with the given seed.
// The seed 0 generates different documents on every call.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		faker: gofakeit.New(uint64(seed)),
		now:   time.Now,
	}
}

// Generate creates n documents with the counts 0 to n-1.
func (g *Generator) Generate(n int) []Document {
	docs := make([]Document, n)
	for i := range docs {
		docs[i] = Document{
			Author:    g.faker.Name(),
			Text:      g.paragraph(),
			Count:     i,
			Timestamp: g.now().UTC(),
		}
	}
	return docs
}

// Records converts the documents to bulk records that are identified by their count.
func Records(docs []Document) []bulk.Record {
	records := make([]bulk.Record, len(docs))
	for i, doc := range docs {
		records[i] = bulk.Record{
			ID:     strconv.Itoa(doc.Count),
			Source: doc,
		}
	}
	return records
}

// paragraph returns one or two lorem ipsum sentences with two to five words each.
func (g *Generator) paragraph() string {
	sentences := make([]string, g.faker.Number(1, 2))
	for i := range sentences {
		sentences[i] = g.faker.LoremIpsumSentence(g.faker.Number(2, 5))
	}
	return strings.Join(sentences, " ")
}
