// Package nationstates logs nations into the NationStates API to keep their
// autologin tokens fresh.
//
// A login is a single GET of the notices shard authenticated with exactly one
// credential header. The response is classified into an Outcome instead of an
// error so callers can decide per nation whether to drop it, skip it or stop
// the whole batch.
//
// # Rate limiting
//
// The API allows 50 requests per 30 seconds and reports the number of requests
// it has seen in X-Ratelimit-Requests-Seen. After every response the counter is
// fed to a RateTracker; once it reaches the safety threshold the next Login
// sleeps until the window has passed.
//
// # Usage
//
//	client, err := nationstates.NewClient("Testlandia admin@example.com", logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := client.Login(ctx, "testlandia", nationstates.WithPassword(pw))
//	if err != nil {
//		log.Fatal(err)
//	}
//	if nation, token, ok := res.Update(); ok {
//		store.Set(nation, token)
//	}
package nationstates
