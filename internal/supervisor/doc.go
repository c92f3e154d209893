// Package supervisor keeps a pool of worker processes alive, one per
// CPU by default. The supervisor process itself serves no traffic; each
// worker is a re-exec of the same binary with a role marker in its
// environment.
package supervisor
