// Sagescan - SageMaker metadata extraction for the catalog
// Scan. Correlate. Emit.
package main

func main() {
	Execute()
}
