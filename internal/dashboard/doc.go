// Package dashboard runs the upload -> preview -> charts -> prompt flow.
//
// A Definition declares everything that varies between dashboards: the
// prompt template catalog, the charts to draw and the columns they need, the
// relationship graph columns and the identifying columns offered for
// filtering. Definitions are loaded from YAML and are immutable once loaded.
//
// Example usage:
//
//	def, err := dashboard.LoadFile("dashboard.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pipeline, err := dashboard.NewPipeline(def, chart.NewRenderer(600, 300), logger)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	view, err := pipeline.Build(ctx, tbl, dashboard.Request{
//	    Request: prompt.Request{Template: "Summarize Performance"},
//	})
//
// Build is stateless: every call derives the whole view from its inputs.
package dashboard
