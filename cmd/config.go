package cmd

// Config carries all runtime settings for the application. Values are
// loaded from the environment by the entry point.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret   string
	BlobBucket  string
	PodEmailURL string

	EnablePodEmail    bool
	EnableDispatchMap bool
	AtomicCompletion  bool
	StrictStatusGuard bool
}
