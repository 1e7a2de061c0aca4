// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"context"
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/dsc-community/apt-adapter/model"
	"github.com/dsc-community/apt-adapter/model/modelmocks"
)

var _ = Describe("APT Export", func() {
	var (
		mockctl  *gomock.Controller
		logger   *modelmocks.MockLogger
		runner   *modelmocks.MockCommandRunner
		ctx      context.Context
		mutated  int
		database []string
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = newTestLogger(mockctl)
		runner = modelmocks.NewMockCommandRunner(mockctl)
		ctx = context.Background()
		mutated = 0
		database = []string{"coreutils", "curl"}

		// scripted apt universe: coreutils and curl installed, curl carries
		// full metadata, anything else is unknown to the repositories
		runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(func(_ context.Context, opts model.ExtendedExecOptions) ([]byte, []byte, int, error) {
			switch opts.Command {
			case "dpkg-query":
				return []byte(strings.Join(database, "\n") + "\n"), nil, 0, nil
			case "apt-get":
				mutated++
				return nil, nil, 0, nil
			case "apt-cache":
				verb, name := opts.Args[0], opts.Args[1]
				switch verb {
				case "show":
					switch name {
					case "curl":
						return fixture("apt_cache_show_curl.txt"), nil, 0, nil
					case "coreutils":
						return []byte("Package: coreutils\nVersion: 9.1-1\nDescription: GNU core utilities\n"), nil, 0, nil
					default:
						return nil, []byte("N: Unable to locate package " + name), 100, nil
					}
				case "policy":
					if name == "curl" {
						return fixture("apt_cache_policy_installed.txt"), nil, 0, nil
					}
					return fixture("apt_cache_policy_notinstalled.txt"), nil, 0, nil
				}
			}
			return nil, nil, 0, fmt.Errorf("unexpected command %s %v", opts.Command, opts.Args)
		})
	})

	AfterEach(func() {
		mockctl.Finish()
	})

	newExport := func(spec *model.PackageSpec) *Package {
		pkg, err := NewPackage(spec, logger, runner)
		Expect(err).ToNot(HaveOccurred())
		return pkg
	}

	It("Should export every known package exactly once without a filter", func() {
		res, err := newExport(&model.PackageSpec{}).Export(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Packages).To(HaveLen(2))

		Expect(res.Packages[0].Name).To(Equal("coreutils"))
		Expect(res.Packages[0].Version).To(Equal("9.1-1"))
		Expect(res.Packages[0].Source).To(Equal("unknown"))
		Expect(res.Packages[0].Exist).To(BeTrue())

		Expect(res.Packages[1].Name).To(Equal("curl"))
		Expect(res.Packages[1].Version).To(Equal("7.88.1-10+deb12u5"))
		Expect(res.Packages[1].Source).To(Equal("http://security.debian.org/debian-security"))
		Expect(res.Packages[1].SourceRepos).To(HaveLen(2))
		Expect(res.Packages[1].Dependencies).To(HaveLen(3))
	})

	It("Should skip installed packages the repositories no longer know", func() {
		database = []string{"coreutils", "local-only-pkg"}

		res, err := newExport(&model.PackageSpec{}).Export(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Packages).To(HaveLen(1))
		Expect(res.Packages[0].Name).To(Equal("coreutils"))
	})

	It("Should apply a name filter", func() {
		res, err := newExport(&model.PackageSpec{Name: "curl"}).Export(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Packages).To(HaveLen(1))
		Expect(res.Packages[0].Name).To(Equal("curl"))
	})

	It("Should match all non-absent filter fields", func() {
		res, err := newExport(&model.PackageSpec{
			Name:    "curl",
			Version: "7.88.1-10+deb12u5",
			Source:  "http://security.debian.org/debian-security",
		}).Export(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(res.Packages).To(HaveLen(1))
	})

	It("Should terminate with exit 1 when the filter names an unknown package", func() {
		_, err := newExport(&model.PackageSpec{Name: "ghost-pkg"}).Export(ctx)

		exitErr := &model.ExitError{}
		Expect(err).To(HaveOccurred())
		Expect(err).To(BeAssignableToTypeOf(exitErr))
		Expect(err.(*model.ExitError).Code).To(Equal(1))
	})

	It("Should terminate with exit 1 when the filter matches nothing", func() {
		_, err := newExport(&model.PackageSpec{Name: "curl", Version: "9.9.9"}).Export(ctx)

		Expect(err).To(HaveOccurred())
		Expect(err.(*model.ExitError).Code).To(Equal(1))
	})

	It("Should never mutate the system", func() {
		_, err := newExport(&model.PackageSpec{}).Export(ctx)
		Expect(err).ToNot(HaveOccurred())
		Expect(mutated).To(Equal(0))
	})
})
