package facets

import (
	"reflect"
	"testing"

	"github.com/afwatch/afwatch/pkg/dataset"
)

func item(category, stage, itemType string) dataset.Item {
	return dataset.Item{Category: category, Stage: stage, Type: itemType}
}

func TestBuild_CanonicalOrder(t *testing.T) {
	items := []dataset.Item{
		item("Anticoagulant (FXI)", "Phase III", "Drug"),
		item("PFA catheter", "Pivotal", "Device"),
		item("Rate control", "Approved", "Drug"),
		item("Cryoballoon", "Approved", "Device"),
	}
	f := Build(items)

	wantCategory := []string{"Rate Control", "PFA Ablation", "Thermal Ablation", "Stroke Prevention"}
	if !reflect.DeepEqual(f.Category, wantCategory) {
		t.Errorf("Category = %v, want %v", f.Category, wantCategory)
	}
	wantStage := []string{"Phase III", "Pivotal", "Approved"}
	if !reflect.DeepEqual(f.Stage, wantStage) {
		t.Errorf("Stage = %v, want %v", f.Stage, wantStage)
	}
}

func TestBuild_DropsUnmapped(t *testing.T) {
	items := []dataset.Item{
		item("Digital therapeutic", "Stage unknown", "App"),
	}
	f := Build(items)
	if len(f.Category) != 0 || len(f.Stage) != 0 {
		t.Errorf("unmapped values should be dropped, got %v / %v", f.Category, f.Stage)
	}
	if !reflect.DeepEqual(f.Type, []string{"App"}) {
		t.Errorf("Type = %v", f.Type)
	}
}

func TestBuild_TypeLexicographic(t *testing.T) {
	items := []dataset.Item{
		item("", "", "Drug"),
		item("", "", "Device"),
		item("", "", "Drug"),
		item("", "", "App"),
	}
	f := Build(items)
	want := []string{"App", "Device", "Drug"}
	if !reflect.DeepEqual(f.Type, want) {
		t.Errorf("Type = %v, want %v", f.Type, want)
	}
}

func TestBuild_NoDuplicates(t *testing.T) {
	items := []dataset.Item{
		item("PFA system", "Phase III", "Device"),
		item("pfa next-gen", "phase 3", "Device"),
	}
	f := Build(items)
	if !reflect.DeepEqual(f.Category, []string{"PFA Ablation"}) {
		t.Errorf("Category = %v", f.Category)
	}
	if !reflect.DeepEqual(f.Stage, []string{"Phase III"}) {
		t.Errorf("Stage = %v", f.Stage)
	}
}
