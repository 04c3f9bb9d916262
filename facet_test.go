package typefacet_test

import (
	"testing"

	tf "github.com/reoring/typefacet"
)

func TestFacet_NamesAndInheritance(t *testing.T) {
	tests := []struct {
		f           *tf.Facet
		kind        tf.Kind
		name        string
		inheritable bool
		required    tf.Category
	}{
		{tf.NewDescription("d"), tf.KindDescription, "description", false, tf.CategoryAny},
		{tf.NewDisplayName("n"), tf.KindDisplayName, "displayName", false, tf.CategoryAny},
		{tf.NewUsage("u"), tf.KindUsage, "usage", false, tf.CategoryAny},
		{tf.NewNotScalar(), tf.KindNotScalar, "notScalar", false, tf.CategoryAny},
		{tf.NewXMLInfo(nil), tf.KindXMLInfo, "xml", false, tf.CategoryAny},
		{tf.NewCustomFacet("breed", "x"), tf.KindCustom, "breed", true, tf.CategoryAny},
		{tf.NewFacetDeclaration("breed", tf.NoType, false), tf.KindFacetDeclaration, "breed", true, tf.CategoryAny},
		{tf.NewAnnotation("meta", 1), tf.KindAnnotation, "meta", false, tf.CategoryAny},
		{tf.NewDefault(1), tf.KindDefault, "default", false, tf.CategoryAny},
		{tf.NewExample(1), tf.KindExample, "example", false, tf.CategoryAny},
		{tf.NewExamples(nil), tf.KindExamples, "examples", false, tf.CategoryAny},
		{tf.NewDiscriminator("kind"), tf.KindDiscriminator, "discriminator", true, tf.CategoryObject},
		{tf.NewDiscriminatorValue("dog"), tf.KindDiscriminatorValue, "discriminatorValue", false, tf.CategoryObject},
		{tf.NewRequired(true), tf.KindRequired, "required", false, tf.CategoryAny},
		{tf.NewAllowedTargets(nil), tf.KindAllowedTargets, "allowedTargets", false, tf.CategoryAny},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			if tc.f.Kind() != tc.kind || tc.f.FacetName() != tc.name {
				t.Fatalf("got %v/%s", tc.f.Kind(), tc.f.FacetName())
			}
			if tc.f.Inheritable() != tc.inheritable {
				t.Fatalf("inheritable=%v", tc.f.Inheritable())
			}
			if tc.f.RequiredType() != tc.required {
				t.Fatalf("requiredType=%v", tc.f.RequiredType())
			}
		})
	}
}

func TestFacet_NotScalarValueIsTrue(t *testing.T) {
	if v := tf.NewNotScalar().Value(); v != true {
		t.Fatalf("got %v", v)
	}
}

func TestFacet_TypedAccessors(t *testing.T) {
	d := tf.NewFacetDeclaration("breed", tf.TypeID(4), true)
	if !d.IsOptional() || d.DeclaredType() != tf.TypeID(4) {
		t.Fatalf("declaration accessors: %v %v", d.IsOptional(), d.DeclaredType())
	}
	if ds := tf.NewDiscriminator("kind"); ds.DiscriminatorProperty() != "kind" || ds.Value() != "kind" {
		t.Fatalf("discriminator property")
	}
	if dv := tf.NewDiscriminatorValue(3); dv.DiscriminatorLiteral() != 3 {
		t.Fatalf("discriminator literal")
	}
	p := tf.NewProperty("age", tf.TypeID(2), true)
	if p.PropertyName() != "age" || p.PropertyType() != tf.TypeID(2) || !p.PropertyRequired() {
		t.Fatalf("property accessors")
	}
}

func TestFacet_SetOwnerOnce(t *testing.T) {
	f := tf.NewDescription("d")
	if !f.SetOwner(3) || f.Owner() != 3 {
		t.Fatalf("first owner should stick")
	}
	if !f.SetOwner(3) {
		t.Fatalf("same owner is accepted again")
	}
	if f.SetOwner(4) || f.Owner() != 3 {
		t.Fatalf("owner must not change")
	}
}

func TestFindHelpers(t *testing.T) {
	meta := []*tf.Facet{
		tf.NewDescription("d"),
		tf.NewProperty("a", tf.NoType, false),
		tf.NewProperty("b", tf.NoType, false),
		nil,
		tf.NewCustomFacet("breed", 1),
	}
	if f, ok := tf.FindFacet(meta, tf.KindProperty); !ok || f.PropertyName() != "a" {
		t.Fatalf("FindFacet should return the first match")
	}
	if _, ok := tf.FindFacet(meta, tf.KindDiscriminator); ok {
		t.Fatalf("unexpected match")
	}
	if got := tf.FindAll(meta, tf.KindProperty); len(got) != 2 {
		t.Fatalf("FindAll got %d", len(got))
	}
	if f, ok := tf.FindProperty(meta, "b"); !ok || f.PropertyName() != "b" {
		t.Fatalf("FindProperty")
	}
	if _, ok := tf.FindNamed(meta, tf.KindCustom, "breed"); !ok {
		t.Fatalf("FindNamed")
	}
}
