// Package ingestion loads a page-delimited document into a vector store.
//
// A Pipeline runs three sequential phases: the source file is split into
// labelled chunks, every chunk is embedded (with per-chunk retry), and the
// embedded chunks are written to a store collection in fixed-size batches
// by a Writer. Each phase finishes before the next begins.
//
// # Usage
//
//	pipeline, err := ingestion.NewPipeline(provider.Embedder(), store,
//	    ingestion.WithCollection("textbook"),
//	    ingestion.WithBatchSize(10),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := pipeline.Run(ctx, "numbered_output.md")
//
// # Failure Handling
//
//   - An unreadable source aborts the run with a *chunking.SourceReadError.
//   - A chunk whose attempts are exhausted is dropped and listed in
//     Result.Dropped; the run continues.
//   - Any store failure aborts the remaining batches with a *StoreError.
//     Batches already acknowledged stay in the store.
package ingestion
