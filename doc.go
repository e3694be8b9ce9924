// Package cachex is a multi-backend cache facade. It routes reads, writes and
// removals to one of several named Backends, falling back to a default when no
// name is given, and normalizes single-key and batch results into a uniform
// hit/miss shape.
//
// Components:
//   - Backend: the capability a cache store implements (ristretto, bigcache,
//     redis adapters live under provider/).
//   - Registry: named backends plus a designated default.
//   - Manager: dispatch with latency logging and total failure containment.
//     A cache is an optional layer; backend errors never reach callers and
//     degrade to a miss.
//   - Partition / ReadResult: batch hit/miss split in request order.
//   - Converter: turns raw key->value results into caller containers while
//     dropping negative-cache placeholders (see Prevent).
//
// Usage:
//
//	reg := cachex.NewRegistry()
//	_ = reg.Register("local", localBackend) // first registered is the default
//	_ = reg.Register("redis", redisBackend)
//
//	m := cachex.NewManager(reg, cachex.Options{Logger: zaplog.New(z)})
//	res, err := m.ReadBatch(ctx, "redis", ids) // err only for unknown cache names
//	load(res.Misses)
package cachex
