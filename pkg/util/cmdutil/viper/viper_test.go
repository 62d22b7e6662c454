// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package viper_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"sigs.k8s.io/yaml"

	viperutil "github.com/gardener/es-paging/pkg/util/cmdutil/viper"
)

var _ = Describe("viper helper", func() {

	var (
		fs        *flag.FlagSet
		name      string
		documents int
	)

	newHelper := func() interface {
		InitFlags(fs *flag.FlagSet)
		BindPFlagFromFlagSet(fs *flag.FlagSet, name, key string)
		BindEnv(key string, envs ...string) error
		ReadInConfig() error
		Usage() string
	} {
		fs = flag.NewFlagSet("test", flag.ContinueOnError)
		fs.StringVar(&name, "index", "default", "name of the index")
		fs.IntVar(&documents, "documents", 10, "number of documents")

		h := viperutil.NewViperHelper(viper.New(), "config", "./does-not-exist")
		h.InitFlags(fs)
		h.BindPFlagFromFlagSet(fs, "index", "index.name")
		h.BindPFlagFromFlagSet(fs, "documents", "ingestion.documents")
		return h
	}

	It("should keep the flag defaults if no config file exists", func() {
		h := newHelper()
		Expect(fs.Parse([]string{})).To(Succeed())
		Expect(h.ReadInConfig()).To(Succeed())
		Expect(name).To(Equal("default"))
		Expect(documents).To(Equal(10))
	})

	It("should apply a custom config file", func() {
		h := newHelper()
		Expect(fs.Parse([]string{"--custom-config=./testdata/config.yaml"})).To(Succeed())
		Expect(h.ReadInConfig()).To(Succeed())
		Expect(name).To(Equal("from-file"))
		Expect(documents).To(Equal(42))
	})

	It("should prefer flags over the config file", func() {
		h := newHelper()
		Expect(fs.Parse([]string{"--custom-config=./testdata/config.yaml", "--documents=7"})).To(Succeed())
		Expect(h.ReadInConfig()).To(Succeed())
		Expect(documents).To(Equal(7))
	})

	It("should fail if the custom config file does not exist", func() {
		h := newHelper()
		Expect(fs.Parse([]string{"--custom-config=./testdata/missing.yaml"})).To(Succeed())
		Expect(h.ReadInConfig()).ToNot(Succeed())
	})

	It("should apply bound environment variables", func() {
		h := newHelper()
		Expect(h.BindEnv("ingestion.documents", "TEST_NUMBER_OF_DOCUMENTS")).To(Succeed())
		Expect(os.Setenv("TEST_NUMBER_OF_DOCUMENTS", "10015")).To(Succeed())
		DeferCleanup(os.Unsetenv, "TEST_NUMBER_OF_DOCUMENTS")

		Expect(fs.Parse([]string{})).To(Succeed())
		Expect(h.ReadInConfig()).To(Succeed())
		Expect(documents).To(Equal(10015))
	})

	It("should render the usage of all keys as yaml", func() {
		h := newHelper()
		usage := map[string]interface{}{}
		Expect(yaml.Unmarshal([]byte(h.Usage()), &usage)).To(Succeed())
		Expect(usage).To(HaveKeyWithValue("index", map[string]interface{}{"name": "name of the index"}))
		Expect(usage).To(HaveKeyWithValue("ingestion", map[string]interface{}{"documents": "number of documents"}))
	})
})
