// Package uniqueness provides concrete implementations of the
// rules.UniquenessChecker interface: adapters that answer "is this value
// already taken?" against an external source.
//
// Two adapters ship with the package:
//
//   - HTTPChecker performs a GET existence check against a configured
//     endpoint and decodes an {"exists": bool} response.
//   - RedisChecker tests key existence via go-redis, treating the presence
//     of "<prefix>:<field>:<value>" as "taken".
//
// Both adapters surface transport failures as errors rather than guessing;
// the Unique rule in the rules package fails open on those errors so that a
// dead backend never blocks form completion.
//
// Configuration structs carry env tags so most applications populate them
// through the config package:
//
//	var cfg uniqueness.RedisConfig
//	config.MustLoad(&cfg)
//	client, err := uniqueness.Connect(ctx, cfg)
//	checker, err := uniqueness.NewRedisChecker(client, cfg)
package uniqueness
