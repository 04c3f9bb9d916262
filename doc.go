// Package typefacet provides:
//
// - A single Facet record covering descriptive facets, facet declarations,
// annotations, default/example/examples and the discriminator pair
// - Self-validation of each facet against its owner type (ValidateSelf)
// - Content sniffing of embedded JSON/XML strings before example validation
// - A Status tree for results that flattens into Issues (JSON Pointer, code, message)
//
// Design policy:
// - Facets reference their owner through a TypeID handle resolved by a Registry.
// - The type system lives in typesys, the document loader in library, the CLI under cmd/typefacet.
// - Messages are produced by the i18n package.
//
// Typical usage:
//
//	lib, err := library.LoadFile("types.yaml", library.Options{})
//	st := lib.Validate()
//	if !st.OK() {
//		fmt.Print(st)
//	}
//
//	d := typefacet.NewDefault(map[string]any{"kind": "dog"})
//	err = reg.Attach(pet, d)
//	st = d.ValidateSelf(reg)
package typefacet
