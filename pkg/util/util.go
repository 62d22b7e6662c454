// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"sigs.k8s.io/yaml"
)

// PrettyPrintStruct returns an obj as pretty printed yaml.
func PrettyPrintStruct(obj interface{}) string {
	str, err := yaml.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(str)
}

// PrettyPrintJSON returns an obj as indented json.
func PrettyPrintJSON(obj interface{}) string {
	str, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return ""
	}
	return string(str)
}

// MarshalNoHTMLEscape is nearly same as json.Marshal but does NOT HTLM-escape <, > or &
// However it does add a newline char at the end (as done by json.Encoder.Encode)
func MarshalNoHTMLEscape(v interface{}) ([]byte, error) {
	buffer := bytes.NewBuffer([]byte{})
	enc := json.NewEncoder(buffer)
	enc.SetEscapeHTML(false)
	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// StringDefault checks if a string is defined.
// If the value is emtpy the default string is returned
func StringDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

// ReadLines reads a byte array line by line ('\n' or '\r\n') and returns the non-empty lines without the line end.
// The channel is closed once the document is consumed or cannot be read anymore.
func ReadLines(document []byte) <-chan []byte {
	c := make(chan []byte)
	go func() {
		defer close(c)
		reader := bufio.NewReader(bytes.NewReader(document))
		doc := make([]byte, 0)
		for {
			line, isPrefix, err := reader.ReadLine()
			if err == io.EOF {
				return
			}
			if err != nil {
				return
			}
			doc = append(doc, line...)
			if isPrefix {
				continue
			}
			if len(bytes.TrimSpace(doc)) != 0 {
				c <- doc
			}
			doc = make([]byte, 0)
		}
	}()
	return c
}
