// Command typefacet validates the facets of type library documents.
package main

func main() {
	Execute()
}
