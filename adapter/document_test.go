// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package adapter

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/dsc-community/apt-adapter/internal/registry"
	"github.com/dsc-community/apt-adapter/model"
	"github.com/dsc-community/apt-adapter/model/modelmocks"
)

var _ = Describe("Adapter Document Mode", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		runner  *modelmocks.MockCommandRunner
		factory *stubFactory
		adapter *Adapter
		ctx     context.Context
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = newTestLogger(mockctl)
		runner = modelmocks.NewMockCommandRunner(mockctl)
		ctx = context.Background()

		registry.Clear()
		factory = &stubFactory{
			typeName: "Stub.Test/Package",
			aliases:  []string{"stub"},
			resource: &stubResource{},
		}
		registry.MustRegister(factory)

		adapter = New(logger, runner)
	})

	AfterEach(func() {
		registry.Clear()
		mockctl.Finish()
	})

	asJSON := func(body any) string {
		raw, err := json.Marshal(body)
		Expect(err).ToNot(HaveOccurred())
		return string(raw)
	}

	It("Should aggregate get results in an adapter instance envelope", func() {
		factory.resource.state = &model.PackageState{Name: "curl", Version: "7.88.1-10", Exist: true}

		input := []byte(`{"resources":[
			{"name":"web deps","type":"stub","properties":{"name":"curl"}},
			{"name":"shell","type":"Stub.Test/Package","properties":{"name":"zsh"}}
		]}`)

		code, body := adapter.RunOperation(ctx, "get", input, "")
		Expect(code).To(Equal(ExitOK))
		Expect(asJSON(body)).To(MatchJSON(`{
			"name": "web deps",
			"type": "DSC.Community/Go",
			"result": [
				{"name":"web deps","type":"stub","properties":{"name":"curl","version":"7.88.1-10","_exist":true}},
				{"name":"shell","type":"Stub.Test/Package","properties":{"name":"curl","version":"7.88.1-10","_exist":true}}
			]
		}`))
	})

	It("Should aggregate test results as a bare entry list", func() {
		factory.resource.testRes = &model.TestResult{
			ActualState:         &model.PackageState{Name: "curl", Exist: false},
			DifferingProperties: []string{"_exist"},
			InDesiredState:      false,
		}

		input := []byte(`{"resources":[{"name":"web deps","type":"stub","properties":{"name":"curl"}}]}`)

		code, body := adapter.RunOperation(ctx, "test", input, "")
		Expect(code).To(Equal(ExitOK))
		Expect(asJSON(body)).To(MatchJSON(`[
			{
				"name": "web deps",
				"type": "stub",
				"properties": {
					"InDesiredState": false,
					"actualState": {"name":"curl","_exist":false},
					"differingProperties": ["_exist"]
				}
			}
		]`))
	})

	It("Should aggregate set results as a bare entry list", func() {
		factory.resource.setRes = &model.SetResult{
			State:               model.SetState{Exist: true},
			DifferingProperties: []string{"_exist"},
		}

		input := []byte(`{"resources":[{"name":"web deps","type":"stub","properties":{"name":"curl"}}]}`)

		code, body := adapter.RunOperation(ctx, "set", input, "")
		Expect(code).To(Equal(ExitOK))
		Expect(asJSON(body)).To(MatchJSON(`[
			{
				"name": "web deps",
				"type": "stub",
				"properties": {"_exist":true,"differingProperties":["_exist"]}
			}
		]`))
	})

	It("Should fail the whole document on an unknown entry type", func() {
		input := []byte(`{"resources":[
			{"name":"good","type":"stub","properties":{"name":"curl"}},
			{"name":"bad","type":"nope","properties":{"name":"curl"}}
		]}`)

		factory.resource.state = &model.PackageState{Name: "curl", Exist: true}

		code, body := adapter.RunOperation(ctx, "get", input, "")
		Expect(code).To(Equal(ExitUnsupported))
		Expect(asJSON(body)).To(ContainSubstring("unsupported resource-type"))
	})

	It("Should fail the whole document on invalid entry properties", func() {
		input := []byte(`{"resources":[{"name":"bad","type":"stub","properties":{"version":"1.0"}}]}`)

		code, _ := adapter.RunOperation(ctx, "get", input, "")
		Expect(code).To(Equal(ExitInvalidInput))
	})

	It("Should surface entry operation failures with their exit codes", func() {
		factory.resource.err = &model.ExitError{Code: ExitFailure, Message: "apt-get failed"}

		input := []byte(`{"resources":[{"name":"web deps","type":"stub","properties":{"name":"curl"}}]}`)

		code, body := adapter.RunOperation(ctx, "set", input, "")
		Expect(code).To(Equal(ExitFailure))
		Expect(asJSON(body)).To(MatchJSON(`{"error":"apt-get failed"}`))
	})

	It("Should produce an empty result list for an empty document", func() {
		code, body := adapter.RunOperation(ctx, "test", []byte(`{"resources":[]}`), "")
		Expect(code).To(Equal(ExitOK))
		Expect(asJSON(body)).To(MatchJSON(`[]`))
	})
})
