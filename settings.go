package gm65d

import (
	"strconv"

	"github.com/mdouchement/logger"
)

// Apply writes the configured settings to the module.
// The affix mode goes first so the prefix and suffix are accepted.
func Apply(s Settings, dev Configurer, log logger.Logger) error {
	if s.PrefixSuffix != nil {
		log.Infof("Set prefix/suffix mode 0b%08b", *s.PrefixSuffix)
		if err := dev.SetupPrefixSuffix(*s.PrefixSuffix); err != nil {
			return err
		}
	}

	if s.Prefix != nil {
		log.Infof("Set prefix %s", strconv.Quote(*s.Prefix))
		if err := dev.UpdatePrefix([]byte(*s.Prefix)); err != nil {
			return err
		}
	}

	if s.Suffix != nil {
		log.Infof("Set suffix %s", strconv.Quote(*s.Suffix))
		if err := dev.UpdateSuffix([]byte(*s.Suffix)); err != nil {
			return err
		}
	}

	if s.ScanDuration != nil {
		log.Infof("Set scan duration %s", s.ScanDuration)
		if err := dev.SetScanDuration(s.ScanDuration.Duration); err != nil {
			return err
		}
	}

	if s.SoundLevel != nil {
		log.Infof("Set sound level %d", *s.SoundLevel)
		if err := dev.SetSoundLevel(*s.SoundLevel); err != nil {
			return err
		}
	}

	if s.Save {
		log.Info("Save configuration to EEPROM")
		if err := dev.SaveConfiguration(); err != nil {
			return err
		}
	}

	return nil
}
