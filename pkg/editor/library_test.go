package editor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/store"
)

func TestAddEntry(t *testing.T) {
	prefixes := map[domain.EntryKind]string{
		domain.EntryKindCharacter: "char_",
		domain.EntryKindLocation:  "loc_",
		domain.EntryKindProp:      "prop_",
	}
	for kind, prefix := range prefixes {
		t.Run(string(kind), func(t *testing.T) {
			var lib domain.Library
			id, err := AddEntry(&lib, kind, "New")
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(id, prefix) {
				t.Errorf("ID の接頭辞が違うのだ: %q", id)
			}
			set := lib.Entries(kind).Find(id)
			if set == nil || set.Name != "New" || set.Blocks == nil {
				t.Errorf("追加したエントリ: %+v", set)
			}

			other, _ := AddEntry(&lib, kind, "New")
			if other == id {
				t.Error("ID が重複しているのだ")
			}
		})
	}

	var lib domain.Library
	if _, err := AddEntry(&lib, domain.EntryKind("vehicle"), "x"); err == nil {
		t.Error("不明な種別はエラーになるべきなのだ")
	}
}

func TestRemoveEntry(t *testing.T) {
	lib := testLibrary()
	if err := RemoveEntry(&lib, domain.EntryKindCharacter, "c1"); err != nil {
		t.Fatal(err)
	}
	if lib.Characters.Find("c1") != nil {
		t.Error("削除されていないのだ")
	}
	if err := RemoveEntry(&lib, domain.EntryKindCharacter, "c1"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("ErrEntryNotFound を期待したのだ: %v", err)
	}
}

func TestUpdateEntryField(t *testing.T) {
	lib := testLibrary()
	before := lib.Clone()

	if err := UpdateEntryField(&lib, domain.EntryKindCharacter, "c1", domain.FieldCharHair, "silver hair"); err != nil {
		t.Fatal(err)
	}
	if got := lib.Characters["c1"].Blocks[domain.FieldCharHair]; got != "silver hair" {
		t.Errorf("フィールドが更新されていないのだ: %q", got)
	}
	if lib.Characters["c1"].Name != "Mina" {
		t.Error("名前が失われたのだ")
	}

	if err := UpdateEntryField(&lib, domain.EntryKindCharacter, "c1", domain.FieldCharHair, ""); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(before, lib); diff != "" {
		t.Errorf("空文字で元に戻るべきなのだ (-want +got):\n%s", diff)
	}

	if err := UpdateEntryField(&lib, domain.EntryKindCharacter, "c1", "hair_colour", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("ErrUnknownField を期待したのだ: %v", err)
	}
	if err := UpdateEntryField(&lib, domain.EntryKindLocation, "nope", domain.FieldLocMain, "x"); !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("ErrEntryNotFound を期待したのだ: %v", err)
	}
}

func TestUpdateEntryField_DoesNotAliasClone(t *testing.T) {
	lib := testLibrary()
	snapshot := lib.Clone()

	if err := UpdateEntryField(&snapshot, domain.EntryKindLocation, "l1", domain.FieldLocWeather, "fog"); err != nil {
		t.Fatal(err)
	}
	if lib.Locations["l1"].Blocks.Has(domain.FieldLocWeather) {
		t.Error("クローンへの更新が元のライブラリに漏れているのだ")
	}
}

func TestConceptImages(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	if _, ok, err := s.ConceptImage(ctx, store.ConceptKeyProp, "p1"); err != nil || ok {
		t.Errorf("未保存: %v %v", ok, err)
	}
	if stored, err := s.SetConceptImage(ctx, store.ConceptKeyProp, "p1", "p1.png"); err != nil || !stored {
		t.Fatalf("SetConceptImage: %v %v", stored, err)
	}
	if v, ok, _ := s.ConceptImage(ctx, store.ConceptKeyProp, "p1"); !ok || v != "p1.png" {
		t.Errorf("ConceptImage: %q %v", v, ok)
	}
	if err := s.RemoveConceptImage(ctx, store.ConceptKeyProp, "p1"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.ConceptImage(ctx, store.ConceptKeyProp, "p1"); ok {
		t.Error("削除されていないのだ")
	}
	if _, err := s.SetConceptImage(ctx, store.ConceptKind("vehicle"), "x", "x.png"); err == nil {
		t.Error("不明な種別はエラーになるべきなのだ")
	}
}

func TestConceptLocations(t *testing.T) {
	p := &domain.ProjectData{Scenes: []domain.Scene{
		{SceneID: "a", Scene: 1, Title: "Gate", Setting: &domain.Setting{Location: "castle gate", TimeOfDay: "dawn"}},
		{ID: "b", Scene: 2, Setting: &domain.Setting{Location: "castle gate"}},
		{SceneNumber: 3, Setting: &domain.Setting{Location: "harbor", Atmosphere: "misty"}},
		{Scene: 4},
	}}

	got := ConceptLocations(p)
	want := []ConceptLocation{
		{ID: "loc_a", Scene: 1, Title: "Gate", Location: "castle gate", TimeOfDay: "dawn"},
		{ID: "loc_3", Scene: 3, Location: "harbor", Atmosphere: "misty"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if got[0].FullText() != "castle gate, dawn" || got[1].FullText() != "harbor, misty" {
		t.Errorf("FullText: %q / %q", got[0].FullText(), got[1].FullText())
	}
	if ConceptLocations(nil) != nil {
		t.Error("nil プロジェクトは nil を返すのだ")
	}
}
