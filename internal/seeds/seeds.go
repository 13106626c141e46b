package seeds

func SeedAll() error {
	if err := SeedThresholds("seeds/thresholds.yaml"); err != nil {
		return err
	}
	if err := SeedDevices(); err != nil {
		return err
	}
	if err := SeedBootstrapKey(); err != nil {
		return err
	}
	return nil
}
