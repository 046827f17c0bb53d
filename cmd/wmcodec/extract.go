/*
 * Copyright (c) 2024, wmcodec contributors
 * All rights reserved.
 *
 * Redistribution and use in source and binary forms, with or without
 * modification, are permitted provided that the following conditions are met:
 *
 *  * Redistributions of source code must retain the above copyright notice,
 *    this list of conditions and the following disclaimer.
 *
 *  * Redistributions in binary form must reproduce the above copyright notice,
 *    this list of conditions and the following disclaimer in the documentation
 *    and/or other materials provided with the distribution.
 *
 * THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
 * AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
 * IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
 * ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
 * LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
 * CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
 * SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
 * INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
 * CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
 * ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
 * POSSIBILITY OF SUCH DAMAGE.
 */

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imagewm/wmcodec/metadata"
	"github.com/imagewm/wmcodec/wmproc"
)

var (
	extractSecret     string
	extractSecretFile string
	extractModality   string
	extractStrength   int
	extractMetaIn     string
	extractText       string
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.png>",
	Short: "Recover a watermark from a PNG image",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractSecret, "secret", "", "secret key (or use --secret-file)")
	extractCmd.Flags().StringVar(&extractSecretFile, "secret-file", "", "file containing the secret key")
	extractCmd.Flags().StringVar(&extractModality, "modality", "invisible", "invisible, steganography, frequency, or metadata")
	extractCmd.Flags().IntVar(&extractStrength, "strength", 80, "strength used at embed time, 0-100")
	extractCmd.Flags().StringVar(&extractMetaIn, "metadata-input", "", "path to the metadata sidecar JSON (metadata modality only)")
	extractCmd.Flags().StringVar(&extractText, "text", "", "expected watermark text (frequency modality only, for presence detection)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	secret, err := readSecret(extractSecret, extractSecretFile)
	if err != nil {
		return err
	}

	modality := wmproc.Modality(extractModality)

	if modality == wmproc.ModalityMetadata {
		if extractMetaIn == "" {
			return fmt.Errorf("metadata modality requires --metadata-input")
		}
		data, err := os.ReadFile(extractMetaIn)
		if err != nil {
			return fmt.Errorf("read %s: %w", extractMetaIn, err)
		}
		var rec metadata.Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return fmt.Errorf("parse %s: %w", extractMetaIn, err)
		}
		result := wmproc.ExtractMetadata(rec)
		return printResult(result)
	}

	img, err := readPNG(args[0])
	if err != nil {
		return err
	}

	if modality == wmproc.ModalityFrequencyDomain {
		if extractText == "" {
			return fmt.Errorf("frequency modality requires --text to test for presence")
		}
		present, err := wmproc.DetectFrequencyDomain(img, secret, extractStrength, extractText)
		if err != nil {
			return fmt.Errorf("detect: %w", err)
		}
		fmt.Printf("present: %t\n", present)
		return nil
	}

	result, err := wmproc.Extract(img, secret, modality, extractStrength)
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	return printResult(result)
}

func printResult(result wmproc.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
