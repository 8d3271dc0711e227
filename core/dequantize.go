package core

import (
	"math"
)

// DequantizeInt16 maps input values in the range [-32768, 32767] to the range
// [-1.0, 1.0], with input 0 mapping to 0.0.
func DequantizeInt16(input []int16) []float64 {

	// In order to guarantee the most accurate results, we'll start with two
	// different formulae: one for negative inputs and one for positive ones.
	//
	// Negative x:
	//   divisor = 32767 + 1 == 32767 - (-1)
	// Positive x:
	//   divisor = 32767 + 0 == 32767 - 0
	// result = x / divisor
	//
	// Practically, we can avoid the branch when calculating the divisor by
	// extracting the sign bit from the input and adding it to the divisor.
	// The actual implementation subtracts the sign bit (rather than adding)
	// because the sign bit will be interpreted as int32(-1) the way we
	// calculate it.

	res := make([]float64, len(input))
	for i := 0; i < len(input); i++ {
		sign := (input[i] & math.MinInt16) >> 15
		divisor := float64(math.MaxInt16) - float64(sign)
		res[i] = float64(input[i]) / divisor
	}
	return res
}

// DequantizeInt24 maps input values in the range [-8388608, 8388607] to the
// range [-1.0, 1.0], with input 0 mapping to 0.0.
func DequantizeInt24(input []int32) []float64 {

	// In order to guarantee the most accurate results, we'll start with two
	// different formulae: one for negative inputs and one for positive ones.
	//
	// Negative x:
	//   divisor = 8388607 + 1 == 8388607 - (-1)
	// Positive x:
	//   divisor = 8388607 + 0 == 8388607 - 0
	// result = x / divisor
	//
	// Practically, we can avoid the branch when calculating the divisor by
	// extracting the sign bit from the input and adding it to the divisor.
	// The actual implementation subtracts the sign bit (rather than adding)
	// because the sign bit will be interpreted as int32(-1) the way we
	// calculate it.

	const (
		minInt24 = -1 << 23
		maxInt24 = 1<<23 - 1
	)

	res := make([]float64, len(input))
	for i := 0; i < len(input); i++ {
		sign := (input[i] & minInt24) >> 23
		divisor := float64(maxInt24) - float64(sign)
		res[i] = float64(input[i]) / divisor
	}
	return res
}

// DequantizeInt32 maps input values in the range [-2147483648, 2147483647] to
// the range [-1.0, 1.0], with input 0 mapping to 0.0.
func DequantizeInt32(input []int32) []float64 {

	// In order to guarantee the most accurate results, we'll start with two
	// different formulae: one for negative inputs and one for positive ones.
	//
	// Negative x:
	//   divisor = 2147483647 + 1 == 2147483647 - (-1)
	// Positive x:
	//   divisor = 2147483647 + 0 == 2147483647 - 0
	// result = x / divisor
	//
	// Practically, we can avoid the branch when calculating the divisor by
	// extracting the sign bit from the input and adding it to the divisor.
	// The actual implementation subtracts the sign bit (rather than adding)
	// because the sign bit will be interpreted as int32(-1) the way we
	// calculate it.

	res := make([]float64, len(input))
	for i := 0; i < len(input); i++ {
		sign := (input[i] & math.MinInt32) >> 31
		divisor := float64(math.MaxInt32) - float64(sign)
		res[i] = float64(input[i]) / divisor
	}
	return res
}

// DequantizeFloat32 casts each input value from a float32 to a float64.
func DequantizeFloat32(input []float32) []float64 {
	res := make([]float64, len(input))
	for i := 0; i < len(input); i++ {
		res[i] = float64(input[i])
	}
	return res
}
