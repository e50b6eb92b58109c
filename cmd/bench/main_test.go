package main

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestConfig_Validate(t *testing.T) {

	valid := Config{Test: "cycle", N: 10, Workers: 2, Registries: 1}
	biff.AssertNil(valid.Validate())

	noWorkers := valid
	noWorkers.Workers = 0
	biff.AssertNotNil(noWorkers.Validate())

	noRegistries := valid
	noRegistries.Registries = 0
	biff.AssertNotNil(noRegistries.Validate())

	negative := valid
	negative.N = -1
	biff.AssertNotNil(negative.Validate())
}
