/*
Package persistence turns game states into versioned save envelopes and back.

The Gateway owns a single save key on a ports.SaveStore. Durable-storage
failures never escape it: Save reports false and Load reports absent, with
the cause logged under a domain.ErrorKind code. Import and Export return
kinded errors instead, since their callers decide how to present failures.

	gw := persistence.New(file.New(dir), persistence.WithLogger(logger))
	if gw.Save(ctx, state) {
		restored, ok := gw.Load(ctx)
		...
	}

Every store call goes through a session.Manager, so concurrent saves to the
same key are serialized.
*/
package persistence
