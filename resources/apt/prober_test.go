// Copyright (c) 2026, the DSC Community Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package apt

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/dsc-community/apt-adapter/model"
	"github.com/dsc-community/apt-adapter/model/modelmocks"
)

var _ = Describe("APT Prober", func() {
	var (
		mockctl *gomock.Controller
		logger  *modelmocks.MockLogger
		runner  *modelmocks.MockCommandRunner
		pkg     *Package
		ctx     context.Context
		err     error
	)

	BeforeEach(func() {
		mockctl = gomock.NewController(GinkgoT())
		logger = newTestLogger(mockctl)
		runner = modelmocks.NewMockCommandRunner(mockctl)
		ctx = context.Background()

		pkg, err = NewPackage(&model.PackageSpec{Name: "curl"}, logger, runner)
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockctl.Finish()
	})

	Describe("availableVersions", func() {
		It("Should parse the version column from apt-cache madison", func() {
			runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, opts model.ExtendedExecOptions) ([]byte, []byte, int, error) {
				Expect(opts.Command).To(Equal("apt-cache"))
				Expect(opts.Args).To(Equal([]string{"madison", "curl"}))
				return fixture("apt_cache_madison.txt"), nil, 0, nil
			})

			versions := pkg.availableVersions(ctx, "curl")
			Expect(versions).To(Equal([]string{"7.88.1-10+deb12u12", "7.88.1-10+deb12u5", "7.88.1-10"}))
		})

		It("Should return nothing when the tool fails", func() {
			runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).Return(nil, []byte("N: Unable to locate package"), 100, nil)

			Expect(pkg.availableVersions(ctx, "curl")).To(BeEmpty())
		})
	})

	Describe("installedPackageNames", func() {
		It("Should list every package in the dpkg database", func() {
			runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, opts model.ExtendedExecOptions) ([]byte, []byte, int, error) {
				Expect(opts.Command).To(Equal("dpkg-query"))
				Expect(opts.Args).To(Equal([]string{"-W", "-f=${Package}\n"}))
				return fixture("dpkg_query_names.txt"), nil, 0, nil
			})

			names, err := pkg.installedPackageNames(ctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(names).To(Equal([]string{"base-files", "coreutils", "curl", "zsh"}))
		})

		It("Should propagate enumeration failures", func() {
			runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).Return(nil, []byte("dpkg-query: error"), 2, nil)

			_, err := pkg.installedPackageNames(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("dpkg-query exited 2"))
		})
	})

	Describe("show", func() {
		It("Should parse the package metadata headers", func() {
			runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, opts model.ExtendedExecOptions) ([]byte, []byte, int, error) {
				Expect(opts.Command).To(Equal("apt-cache"))
				Expect(opts.Args).To(Equal([]string{"show", "curl"}))
				return fixture("apt_cache_show_curl.txt"), nil, 0, nil
			})

			info, err := pkg.show(ctx, "curl")
			Expect(err).ToNot(HaveOccurred())
			Expect(info.Name).To(Equal("curl"))
			Expect(info.Version).To(Equal("7.88.1-10+deb12u5"))
			Expect(info.Description).To(Equal("command line tool for transferring data with URL syntax"))
			Expect(info.Dependencies).To(Equal([]string{
				"libc6 (>= 2.34)",
				"libcurl4 (= 7.88.1-10+deb12u5)",
				"zlib1g (>= 1:1.1.4)",
			}))
		})

		It("Should fail for packages unknown to the repositories", func() {
			runner.EXPECT().ExecuteWithOptions(gomock.Any(), gomock.Any()).Return(nil, []byte("N: Unable to locate package"), 100, nil)

			_, err := pkg.show(ctx, "nonexistent-pkg")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no repository metadata"))
		})
	})

	Describe("parseSourceRepositories", func() {
		It("Should collect URLs from the installed version block", func() {
			urls := parseSourceRepositories(string(fixture("apt_cache_policy_installed.txt")))
			Expect(urls).To(Equal([]string{
				"http://security.debian.org/debian-security",
				"http://deb.debian.org/debian",
			}))
		})

		It("Should skip the dpkg status file entry", func() {
			urls := parseSourceRepositories(string(fixture("apt_cache_policy_installed.txt")))
			Expect(urls).ToNot(ContainElement(ContainSubstring("/var/lib/dpkg/status")))
		})

		It("Should find nothing when the package is not installed", func() {
			Expect(parseSourceRepositories(string(fixture("apt_cache_policy_notinstalled.txt")))).To(BeEmpty())
		})

		It("Should deduplicate repeated repository URLs", func() {
			output := ` *** 1.0-1 500
        500 http://deb.debian.org/debian bookworm/main amd64 Packages
        500 http://deb.debian.org/debian bookworm/main i386 Packages`

			Expect(parseSourceRepositories(output)).To(Equal([]string{"http://deb.debian.org/debian"}))
		})

		It("Should handle empty output", func() {
			Expect(parseSourceRepositories("")).To(BeEmpty())
		})
	})
})
