/*
Package zsetdb implements persistent sorted sets on top of an ordered,
transactional key-value engine. Each set holds unique members carrying a
real-valued score, retrievable by rank or by score range, with Redis-style
operations: ZAdd, ZRange, ZRangeByScore, ZRem, ZCard, ZScore, ZCount,
ZRemRangeByScore, ZPopMin, ZPopMax and ZDelete.

Sorted-set semantics are encoded into the engine's flat byte keyspace with
two parallel indices per set: a score-ordered index whose iteration order is
ascending score (member id breaking ties), and a member index mapping each
member to its current score. Every operation runs as exactly one engine
transaction, so the two indices are always consistent at transaction
boundaries and readers never observe a half-applied write.

A DB is opened against one of four engines (bbolt by default, badger,
pebble, or an in-memory b-tree) and must be closed to release the directory
lock. Named namespaces isolate independent keyspaces of sorted sets inside
one DB.

See the examples directory for usage.
*/
package zsetdb
