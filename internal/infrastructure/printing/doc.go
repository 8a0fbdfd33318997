// Package printing renders ledger documents (carnê booklets and sale
// reports) to PDF with headless Chrome and keeps the files in a PDFStorage.
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	store, err := NewFileSystemStorage(&FileSystemStorageConfig{BasePath: "documents"})
//	printer := NewDocumentPrinter(renderer, store, "Loja Central", logger)
//	doc, err := printer.PrintCarne(ctx, carne)
package printing
