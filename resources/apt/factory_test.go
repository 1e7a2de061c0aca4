// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dsc-community/apt-adapter/internal/registry"
)

var _ = Describe("APT Factory", func() {
	BeforeEach(func() {
		registry.Clear()
	})

	AfterEach(func() {
		registry.Clear()
	})

	It("Should register under the canonical token and aliases", func() {
		Register()

		for _, token := range []string{"Microsoft.Linux.Apt/Package", "microsoft.linux.apt/package", "apt", "AptPackage"} {
			f, err := registry.Resolve(token)
			Expect(err).ToNot(HaveOccurred())
			Expect(f.TypeName()).To(Equal(ResourceTypeName))
		}
	})

	Describe("Descriptor", func() {
		It("Should advertise the DSC operation set", func() {
			d := Descriptor()
			Expect(d.Type).To(Equal("Microsoft.Linux.Apt/Package"))
			Expect(d.Kind).To(Equal("resource"))
			Expect(d.Capabilities).To(Equal([]string{"get", "set", "test", "export"}))
			Expect(d.Manifest).ToNot(BeNil())
			Expect(d.Manifest.Type).To(Equal(d.Type))
			Expect(d.Manifest.Version).To(Equal(d.Version))
		})

		It("Should embed a schema requiring name", func() {
			d := Descriptor()

			schema := map[string]any{}
			Expect(json.Unmarshal(d.Manifest.Schema.Embedded, &schema)).To(Succeed())
			Expect(schema["required"]).To(Equal([]any{"name"}))
			Expect(schema["additionalProperties"]).To(Equal(false))

			props, ok := schema["properties"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(props).To(HaveKey("name"))
			Expect(props).To(HaveKey("version"))
			Expect(props).To(HaveKey("_exist"))
			Expect(props).To(HaveKey("dependencies"))
		})
	})
})
