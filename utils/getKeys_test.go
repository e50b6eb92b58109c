package utils

import (
	"testing"

	"github.com/fulldump/biff"
)

func TestGetKeys(t *testing.T) {

	biff.AssertEqual(GetKeys(map[string]int{"b": 1, "c": 2, "a": 3}), []string{"a", "b", "c"})
	biff.AssertEqual(GetKeys(map[string]bool{}), []string{})
}
