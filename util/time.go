package util

func GetMonotonicMs() int64 {
	return GetMonotonicUs() / 1e3
}
