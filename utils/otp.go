package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
)

// OTPTTL is how long an issued OTP stays valid.
const OTPTTL = 5 * time.Minute

// GenerateSecureOTP generates a secure random numeric OTP of the given length.
func GenerateSecureOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// StoreOTP caches an OTP for the given phone number with the standard TTL.
func StoreOTP(phone, otp string) error {
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	ctx := context.Background()
	key := fmt.Sprintf("otp:%s", phone)
	if err := client.Set(ctx, key, otp, OTPTTL).Err(); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.Error(err))
		return fmt.Errorf("failed to store OTP")
	}
	return nil
}

// VerifyOTP checks a submitted OTP against the cached one and consumes it on
// success so a code cannot be replayed.
func VerifyOTP(phone, otp string) error {
	client := GetOTPCacheClient()
	if client == nil {
		return fmt.Errorf("OTP cache client not initialized")
	}

	ctx := context.Background()
	key := fmt.Sprintf("otp:%s", phone)
	stored, err := client.Get(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("OTP expired or not found")
	}
	if stored != otp {
		return fmt.Errorf("incorrect OTP")
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		GetLogger().Warn("Failed to consume OTP", zap.Error(err))
	}
	return nil
}
