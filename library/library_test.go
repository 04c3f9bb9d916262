package library_test

import (
	"errors"
	"strings"
	"testing"

	tf "github.com/reoring/typefacet"
	"github.com/reoring/typefacet/library"
	"github.com/reoring/typefacet/typesys"
)

func TestLoadFile_ValidLibrary(t *testing.T) {
	lib, err := library.LoadFile("testdata/pets.yaml", library.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	st := lib.Validate()
	if !st.OK() {
		t.Fatalf("expected a valid library:\n%s", st)
	}

	dog, ok := lib.Registry.Lookup("Dog")
	if !ok || !dog.IsSubTypeOf("Pet") || !dog.IsObject() {
		t.Fatalf("Dog should derive from Pet")
	}
	if _, ok := tf.FindFacet(dog.LocalMeta(), tf.KindDiscriminatorValue); !ok {
		t.Fatalf("discriminatorValue not attached")
	}
	if _, ok := tf.FindNamed(dog.LocalMeta(), tf.KindAnnotation, "owner"); !ok {
		t.Fatalf("annotation not attached")
	}
	ex, _ := tf.FindFacet(dog.LocalMeta(), tf.KindExamples)
	if got := ex.Examples(lib.Registry); len(got) != 2 {
		t.Fatalf("expected two example contents, got %d", len(got))
	}
}

func TestLoadFile_BrokenLibrary(t *testing.T) {
	lib, err := library.LoadFile("testdata/broken.yaml", library.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	iss := lib.Validate().Issues()
	want := map[string]string{
		"/Animal/default":            tf.CodeInvalidDefault,
		"/Animal/discriminator":      tf.CodeDiscriminatorNotScalar,
		"/Animal/discriminatorValue": tf.CodeInvalidDiscriminatorValue,
		"/Animal/examples":           tf.CodeExamplesNotMap,
		"/Fish/(mystery)":            tf.CodeUnknownAnnotation,
		"/Fish/example":              tf.CodeInvalidExample,
		"/Shape/discriminator":       tf.CodeDiscriminatorNotObject,
	}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %d: %+v", len(want), len(iss), iss)
	}
	for _, is := range iss {
		if code, ok := want[is.Path]; !ok || code != is.Code {
			t.Fatalf("unexpected issue %+v", is)
		}
	}
}

func TestLoad_JSONDocument(t *testing.T) {
	doc := `{
	  "types": {
	    "Point": {"properties": {"x": "number", "y": "number"}, "example": "{\"x\": 1, \"y\": 2}"},
	    "Points": {"type": "Point[]", "example": [{"x": 1, "y": 2}]}
	  }
	}`
	lib, err := library.Load([]byte(doc), library.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st := lib.Validate(); !st.OK() {
		t.Fatalf("unexpected errors:\n%s", st)
	}
	pts, _ := lib.Registry.Lookup("Points")
	if !pts.IsArray() {
		t.Fatalf("Points should be an array type")
	}
}

func TestLoad_DuplicateKeys(t *testing.T) {
	doc := "types:\n  Pet: object\n  Pet: string\n"
	_, err := library.Load([]byte(doc), library.Options{})
	var dup *library.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "Pet" || dup.Line != 3 || dup.FirstLine != 2 {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if _, err := library.Load([]byte(doc), library.Options{AllowDuplicateKeys: true}); err != nil {
		t.Fatalf("duplicates allowed: %v", err)
	}
}

func TestLoad_StructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
		is   error
	}{
		{"unknown super", "types:\n  Dog: Animal\n", "/types/Dog", typesys.ErrUnknownType},
		{"union", "types:\n  A: string | number\n", "/types/A", library.ErrTypeExpression},
		{"cycle", "types:\n  A: B\n  B: A\n", "/types/A", nil},
		{"types not a map", "types: [1, 2]\n", "/types", library.ErrNotAMap},
		{"builtin redeclared", "types:\n  string: object\n", "/types/string", typesys.ErrDuplicateType},
		{"enum not a list", "types:\n  A:\n    enum: x\n", "/types/A/enum", nil},
		{"empty", "", "/", library.ErrEmptyDocument},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := library.Load([]byte(tc.doc), library.Options{})
			var le *library.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("expected LoadError, got %v", err)
			}
			if le.Path != tc.path {
				t.Fatalf("path=%s want %s (%v)", le.Path, tc.path, err)
			}
			if tc.is != nil && !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
		})
	}
}

func TestLoad_OptionalPropertiesAndRequiredFacet(t *testing.T) {
	doc := strings.Join([]string{
		"types:",
		"  User:",
		"    properties:",
		"      id: integer",
		"      nick?: string",
		"      email:",
		"        type: string",
		"        required: false",
		"      note:",
		"        type: string",
		"        required: maybe",
		"    example:",
		"      id: 1",
		"      note: hi",
	}, "\n")
	lib, err := library.Load([]byte(doc), library.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	iss := lib.Validate().Issues()
	if len(iss) != 1 || iss[0].Path != "/User.note/required" || iss[0].Code != tf.CodeRequiredNotBoolean {
		t.Fatalf("unexpected issues %+v", iss)
	}
}

func TestLoad_ClosedObjectsOption(t *testing.T) {
	doc := "types:\n  P:\n    properties:\n      a: string\n    example: {a: x, b: y}\n"
	lib, err := library.Load([]byte(doc), library.Options{Registry: typesys.Options{ClosedObjects: true}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	iss := lib.Validate().Issues()
	if len(iss) != 1 || iss[0].Code != tf.CodeInvalidExample || !strings.Contains(iss[0].Message, "unknown property: b") {
		t.Fatalf("unexpected issues %+v", iss)
	}
}

func TestLoad_AnnotationTypeFacetsValidated(t *testing.T) {
	doc := strings.Join([]string{
		"annotationTypes:",
		"  deprecated:",
		"    type: boolean",
		"    default: nope",
		"    discriminator: kind",
		"  owner: string",
	}, "\n")
	lib, err := library.Load([]byte(doc), library.Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	st := lib.Validate()
	if st.OK() {
		t.Fatalf("expected annotation type facets to fail:\n%s", st)
	}
	iss := st.Issues()
	want := []tf.Issue{
		{Path: "/(deprecated)/default", Code: tf.CodeInvalidDefault},
		{Path: "/(deprecated)/discriminator", Code: tf.CodeDiscriminatorNotObject},
	}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %+v", len(want), iss)
	}
	for i, w := range want {
		if iss[i].Path != w.Path || iss[i].Code != w.Code {
			t.Fatalf("issue %d: got %+v want %s %s", i, iss[i], w.Path, w.Code)
		}
	}
}

func TestLoad_DuplicateKeysJSON(t *testing.T) {
	doc := "{\n  \"types\": {\n    \"Pet\": \"object\",\n    \"Pet\": \"string\"\n  }\n}"
	_, err := library.Load([]byte(doc), library.Options{})
	var dup *library.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if dup.Key != "Pet" || dup.FirstLine != 3 || dup.FirstCol != 5 || dup.Line != 4 || dup.Col != 5 {
		t.Fatalf("unexpected positions %+v", dup)
	}

	// same key in sibling objects is fine
	ok := `{"types": {"A": {"description": "a"}, "B": {"description": "b"}}}`
	if _, err := library.Load([]byte(ok), library.Options{}); err != nil {
		t.Fatalf("load: %v", err)
	}
}
