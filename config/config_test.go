package config_test

import (
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/batbridge/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("RunConfig", func() {
	It("defaults to the single-cycle variant with no cache hierarchy", func() {
		cfg := config.DefaultRunConfig()
		Expect(cfg.Variant).To(Equal(config.VariantSingle))
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.CacheLevels).To(BeEmpty())
	})

	It("rejects an unknown variant", func() {
		cfg := config.DefaultRunConfig()
		cfg.Variant = "turbo"
		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("round-trips through a JSON file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "run.json")

		cfg := config.DefaultRunConfig()
		cfg.Variant = config.VariantPredicted
		cfg.CycleBound = 500

		Expect(cfg.SaveConfig(path)).To(Succeed())

		loaded, err := config.LoadConfig(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded.Variant).To(Equal(config.VariantPredicted))
		Expect(loaded.CycleBound).To(Equal(uint64(500)))
	})
})
