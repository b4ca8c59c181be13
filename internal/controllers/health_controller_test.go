package controllers

import (
	"encoding/json"
	"testing"
)

func TestHealthRowSetEncodesAsArray(t *testing.T) {
	b, err := json.Marshal([]healthRow{{Ok: 1}})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `[{"ok":1}]` {
		t.Errorf("db field = %s, want [{\"ok\":1}]", got)
	}
}
