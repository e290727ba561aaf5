package linear

// Option is a function that configures a Learner
type Option func(*Learner)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(l *Learner) {
		l.fitIntercept = fit
	}
}

// WithL2 adds a ridge penalty alpha*||w||² to the least-squares objective.
// The intercept is never penalized.
func WithL2(alpha float64) Option {
	return func(l *Learner) {
		l.l2 = alpha
	}
}
