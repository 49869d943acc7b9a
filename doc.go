// Package dymo provides a Go client SDK for the Dymo public API: prayer
// times, input sanitization, password validation and URL encryption.
//
// All substantive logic runs on the Dymo servers; the SDK validates
// parameters, builds requests and wraps every call in a resilience layer
// with retries, exponential backoff, optional fallback data and
// rate-limit tracking.
//
// Basic usage:
//
//	client, err := dymo.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	encrypted, err := client.EncryptURL(ctx, "https://dymo.tpeoficial.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(encrypted.Encrypt)
//
// Fallback data can be supplied per call and is returned verbatim when all
// retries are exhausted and fallback substitution is enabled:
//
//	client, _ := dymo.New(dymo.WithResilience(dymo.ResilienceConfig{
//	    FallbackEnabled: true,
//	    RetryAttempts:   2,
//	    RetryDelay:      time.Second,
//	}))
//
//	times, err := client.PrayerTimes(ctx, 40.416, -3.703,
//	    dymo.WithFallback(cachedTimes))
package dymo
