package redisx

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// claimPending holds an Idempotency-Key while its order is being placed.
const claimPending = "pending"

// Idempotency maps a customer's Idempotency-Key header to the order it
// created.
type Idempotency struct {
	RDB redis.Cmdable
}

// Claim reserves key for the caller. When the key is already taken it
// returns the order stored under it, or 0 while another request still holds
// the claim.
func (i Idempotency) Claim(ctx context.Context, customerID int64, key string) (int64, bool, error) {
	k := IdemOrderKey(customerID, key)
	for attempt := 0; attempt < 2; attempt++ {
		ok, err := i.RDB.SetNX(ctx, k, claimPending, TTLClaim).Result()
		if err != nil {
			return 0, false, err
		}
		if ok {
			return 0, true, nil
		}

		v, err := i.RDB.Get(ctx, k).Result()
		if errors.Is(err, redis.Nil) {
			continue // expired between the two calls
		}
		if err != nil {
			return 0, false, err
		}
		id, err := parseClaim(v)
		return id, false, err
	}
	return 0, false, nil
}

// Remember replaces the claim with the order it produced.
func (i Idempotency) Remember(ctx context.Context, customerID int64, key string, orderID int64) error {
	return i.RDB.Set(ctx, IdemOrderKey(customerID, key), strconv.FormatInt(orderID, 10), TTLIdempotency).Err()
}

// Release drops a claim whose order was rejected so the key can be retried.
func (i Idempotency) Release(ctx context.Context, customerID int64, key string) error {
	return i.RDB.Del(ctx, IdemOrderKey(customerID, key)).Err()
}

func parseClaim(v string) (int64, error) {
	if v == claimPending {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
