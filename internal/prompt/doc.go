// Package prompt turns a rendered table into an LLM prompt.
//
// A Catalog holds the named templates available to a dashboard. Each template
// body carries zero or more {table} tokens which are replaced, literally, with
// the markdown rendering of the uploaded data. A body that contains the
// {custom} token is a freeform template: the end user's text is substituted
// for {custom} before the table is inserted.
//
// Example usage:
//
//	catalog := prompt.DefaultCatalog()
//	p, err := catalog.Prompt(prompt.Request{Template: "Summarize Performance"}, tableText)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(p.Text)
//
// Freeform usage:
//
//	p, _ := catalog.Prompt(prompt.Request{
//	    Template: "Freeform Prompt",
//	    Custom:   "List the three worst lines:\n\n{table}",
//	}, tableText)
package prompt
