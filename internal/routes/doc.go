// Package routes declares the server-side route table: which paths
// exist, what each renders, and which script chunks the client needs to
// hydrate them. Resolution is separate from rendering so data fetching
// and redirect decisions happen before any markup is produced.
package routes
