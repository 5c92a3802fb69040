/*
Package exitqueue keeps pending exits ordered by their priority.

Priority is the pair (exitable height, token id), compared in that order,
so two entries never compare equal. Every entry is stored three times: in
the priority index, in the deadline index ordered by the end of the
challenge period, and under its token id so that any entry can be removed
without scanning. All indexes live in the application store, which keeps
them ordered, so every operation costs a logarithmic number of reads.
*/
package exitqueue
