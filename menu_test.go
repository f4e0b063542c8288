package curved

import "testing"

func TestContextMenu(t *testing.T) {
	var m ContextMenu
	var ran []string
	m.AddItem("Add Key", func() { ran = append(ran, "add") })
	m.AddItem("Tangents/In/Linear", func() { ran = append(ran, "in") })
	m.AddItem("Tangents/Out/Step", func() { ran = append(ran, "out") })
	m.AddItem("Disabled", nil)

	paths := m.Paths()
	if len(paths) != 4 || paths[1] != "Tangents/In/Linear" {
		t.Errorf("paths = %v", paths)
	}

	if !m.Invoke("Tangents/Out/Step") || !m.Invoke("Disabled") {
		t.Error("Invoke should find existing entries")
	}
	if m.Invoke("Tangents") {
		t.Error("Invoke should not match a submenu name")
	}
	if len(ran) != 1 || ran[0] != "out" {
		t.Errorf("ran = %v", ran)
	}

	sub := m.Submenu("Tangents/")
	if len(sub) != 2 || sub[0].Path != "In/Linear" || sub[1].Path != "Out/Step" {
		t.Fatalf("submenu = %+v", sub)
	}
	sub[0].Action()
	if ran[len(ran)-1] != "in" {
		t.Error("submenu entries keep their action")
	}
	if len(m.Submenu("Tangents/In")) != 1 {
		t.Error("prefix without a trailing slash should match")
	}
}
