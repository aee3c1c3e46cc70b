package swe_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSwe(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SWE Core Suite")
}
