// Package report renders extraction results for people and tools. The
// simple writer targets terminals, the JSON writer targets pipelines,
// and the markdown writer produces shareable documents. All writers
// list the triggered signals so a reader can see why a page looks
// suspicious without decoding the raw feature vector.
package report
