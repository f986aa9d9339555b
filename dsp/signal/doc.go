// Package signal defines the mono Signal type shared by the measurement
// packages together with peak normalization, sample-rate checks and a
// seeded white-noise generator.
//
// # Usage
//
//	g := signal.NewGeneratorWithOptions(
//		[]core.MeasurementOption{core.WithSampleRate(48000)},
//		signal.WithSeed(42),
//	)
//	noise, err := g.WhiteNoise(0.5, 180*48000)
//	if err != nil {
//		return err
//	}
//	if err := signal.CheckSameRate(noise, recorded); err != nil {
//		return err
//	}
package signal
